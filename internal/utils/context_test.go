// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestAccountIDCtxKey(t *testing.T) {
	if AccountIDCtxKey.String() != "accountID" {
		t.Errorf("expected 'accountID', got '%s'", AccountIDCtxKey.String())
	}
}

func TestGetAccountIDFromContext_Success(t *testing.T) {
	ctx := WithAccountID(context.Background(), 42)

	accountID, ok := GetAccountIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if accountID != 42 {
		t.Errorf("expected accountID=42, got %d", accountID)
	}
}

func TestGetAccountIDFromContext_Missing(t *testing.T) {
	accountID, ok := GetAccountIDFromContext(context.Background())

	if ok {
		t.Error("expected ok=false for missing key, got true")
	}
	if accountID != 0 {
		t.Errorf("expected zero value, got %d", accountID)
	}
}

func TestGetAccountIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), AccountIDCtxKey, "not-a-number")

	_, ok := GetAccountIDFromContext(ctx)

	if ok {
		t.Error("expected ok=false for wrong type, got true")
	}
}

func TestGetAccountIDFromContext_PlainStringKeyDoesNotCollide(t *testing.T) {
	//nolint:staticcheck // plain string key on purpose
	ctx := context.WithValue(context.Background(), "accountID", uint64(42))

	if _, ok := GetAccountIDFromContext(ctx); ok {
		t.Error("expected ok=false: plain string key must not match contextKey")
	}
}

func TestRequestMeta(t *testing.T) {
	if meta := RequestMetaFromContext(context.Background()); meta != (RequestMeta{}) {
		t.Errorf("expected zero meta, got %+v", meta)
	}

	want := RequestMeta{IP: "10.0.0.1", TransactionID: "trace-1"}
	got := RequestMetaFromContext(WithRequestMeta(context.Background(), want))

	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestOperationDefaults(t *testing.T) {
	ctx := context.Background()

	if _, ok := UseCacheFromContext(ctx); ok {
		t.Error("expected no use-cache default")
	}
	if _, ok := AutoSaveFromContext(ctx); ok {
		t.Error("expected no auto-save default")
	}

	ctx = WithAutoSave(WithUseCache(ctx, false), false)

	if v, ok := UseCacheFromContext(ctx); !ok || v {
		t.Errorf("expected use-cache=false, got %v (ok=%v)", v, ok)
	}
	if v, ok := AutoSaveFromContext(ctx); !ok || v {
		t.Errorf("expected auto-save=false, got %v (ok=%v)", v, ok)
	}
}
