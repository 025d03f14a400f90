package main

import (
	"context"
	"testing"

	"backhouse/utils"
)

func TestGeneratePurchaseOrderNumberUnsupportedDB(t *testing.T) {
	_, err := utils.GeneratePurchaseOrderNumber(context.Background(), struct{}{})
	if err == nil {
		t.Fatalf("expected error for unsupported DB type")
	}
}
