package platform

import (
	"context"
	"errors"
	"testing"
)

// wmic pads every column and ends lines with \r\r\n.
const wmicBaseboard = "Manufacturer           Product        SerialNumber     Version   \r\r\n" +
	"ASUSTeK COMPUTER INC.  PRIME B450M-A  190436626900451  Rev X.0x  \r\r\n" +
	"\r\r\n"

func TestParseMotherboardOutput(t *testing.T) {
	board, err := ParseMotherboardOutput(wmicBaseboard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Motherboard{
		Manufacturer: "ASUSTeK COMPUTER INC.",
		Product:      "PRIME B450M-A",
		SerialNumber: "190436626900451",
		Version:      "Rev X.0x",
	}
	if board != want {
		t.Errorf("got %+v\nwant %+v", board, want)
	}
}

func TestParseMotherboardOutput_EmptyTrailingColumn(t *testing.T) {
	raw := "Manufacturer  Product  SerialNumber  Version\n" +
		"LENOVO        20XW     PF2ABCDE\n"

	board, err := ParseMotherboardOutput(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if board.Manufacturer != "LENOVO" || board.SerialNumber != "PF2ABCDE" || board.Version != "" {
		t.Errorf("got %+v", board)
	}
}

func TestParseMotherboardOutput_Malformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"Manufacturer  Product  SerialNumber  Version\r\r\n",
		"Manufacturer  Product\nACME  X1\n",
	} {
		if _, err := ParseMotherboardOutput(raw); !errors.Is(err, ErrParseFailure) {
			t.Errorf("ParseMotherboardOutput(%q) error = %v", raw, err)
		}
	}
}

func TestReadMotherboard(t *testing.T) {
	mock := newMockRunner()
	mock.setCommandResult("wmic baseboard get Manufacturer,Product,SerialNumber,Version", wmicBaseboard)

	board, err := ReadMotherboard(context.Background(), mock, Windows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if board.Product != "PRIME B450M-A" {
		t.Errorf("Product = %q", board.Product)
	}

	if _, err := ReadMotherboard(context.Background(), mock, Linux); !errors.Is(err, ErrPlatformMismatch) {
		t.Errorf("expected ErrPlatformMismatch, got %v", err)
	}
}
