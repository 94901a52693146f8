package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/766ms/Glam-rent-v1/pkg/apperr"
)

func TestKindOf(t *testing.T) {
	err := apperr.New(apperr.NotFound, "Order not found")
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("expected NotFound, got %v", apperr.KindOf(err))
	}

	// Wrapping preserves the kind.
	wrapped := fmt.Errorf("while confirming: %w", err)
	if apperr.KindOf(wrapped) != apperr.NotFound {
		t.Errorf("expected NotFound through wrap, got %v", apperr.KindOf(wrapped))
	}

	// Unclassified errors default to Internal.
	if apperr.KindOf(errors.New("boom")) != apperr.Internal {
		t.Error("expected Internal for plain error")
	}
}

func TestMessage(t *testing.T) {
	err := apperr.New(apperr.Conflict, "Email is already registered")
	if apperr.Message(err) != "Email is already registered" {
		t.Errorf("unexpected message: %q", apperr.Message(err))
	}

	// Plain errors never leak their text to clients.
	if apperr.Message(errors.New("pq: disk full")) == "pq: disk full" {
		t.Error("internal error text must not surface")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("record not found")
	err := apperr.Wrap(apperr.NotFound, cause, "Product not found")

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}
