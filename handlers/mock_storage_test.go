package handlers

import (
	"context"
	"time"
)

type mockStorage struct {
	PresignFn    func(key, contentType string) (string, error)
	DeleteFn     func(key string) error
	DeleteCalls  []string
	PresignCalls []string
	Base         string
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		DeleteCalls:  []string{},
		PresignCalls: []string{},
		Base:         testPublicBase,
	}
}

func (m *mockStorage) PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error) {
	m.PresignCalls = append(m.PresignCalls, key)
	if m.PresignFn != nil {
		return m.PresignFn(key, contentType)
	}
	return "https://signed.example.com/" + key, nil
}

func (m *mockStorage) DeleteObject(ctx context.Context, key string) error {
	m.DeleteCalls = append(m.DeleteCalls, key)
	if m.DeleteFn != nil {
		return m.DeleteFn(key)
	}
	return nil
}

func (m *mockStorage) PublicBase() string {
	return m.Base
}
