package db

import (
	"context"
	"testing"
)

func TestTxFromContext_Nil(t *testing.T) {
	if tx := TxFromContext(context.Background()); tx != nil {
		t.Error("expected nil tx from empty context")
	}
}

func TestTxFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), DBTxKey, "not-a-tx")
	if tx := TxFromContext(ctx); tx != nil {
		t.Error("expected nil tx for wrong value type")
	}
}

func TestConnFromContext_Nil(t *testing.T) {
	if conn := ConnFromContext(context.Background()); conn != nil {
		t.Error("expected nil conn from empty context")
	}
}
