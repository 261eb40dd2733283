package domain

import (
	"errors"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "scanner.scan",
		Kind: KindNotFound,
		Path: "src/Missing.pas",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindNotFound {
		t.Fatalf("expected kind %s", KindNotFound)
	}
}

func TestIsKindForOpError(t *testing.T) {
	err := &OpError{
		Op:   "workspacefinder.loadconfig",
		Kind: KindInvalidConfig,
		Err:  ErrInvalidConfig,
	}

	if !IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected IsKind to match op error")
	}
	if IsKind(err, KindNotFound) {
		t.Fatalf("did not expect KindNotFound")
	}
}

func TestIsKindForDomainError(t *testing.T) {
	err := &Error{
		Kind: KindParse,
		Msg:  "unexpected token",
	}

	if !IsKind(err, KindParse) {
		t.Fatalf("expected IsKind to match domain error")
	}
}

func TestIsKindPlainError(t *testing.T) {
	if IsKind(errors.New("plain"), KindExecution) {
		t.Fatalf("plain errors carry no kind")
	}
}
