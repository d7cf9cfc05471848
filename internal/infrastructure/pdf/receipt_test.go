package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/temucosoft-api/internal/application/inventory"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":       "$0",
		"999":     "$999",
		"1000":    "$1.000",
		"1234567": "$1.234.567",
		"250.5":   "$250,50",
		"1000.05": "$1.000,05",
		"-1500":   "-$1.500",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestRenderSaleReceipt(t *testing.T) {
	sale := &entity.Sale{
		ID:            "5f0c2a1e-0000-4000-8000-000000000001",
		PaymentMethod: entity.PaymentDebit,
		Total:         decimal.RequireFromString("2501"),
		CreatedAt:     time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		Items: []entity.SaleItem{
			{ProductID: "p1", Quantity: 2, Price: decimal.RequireFromString("1000")},
			{ProductID: "p2", Quantity: 2, Price: decimal.RequireFromString("250.50")},
		},
	}
	doc := inventory.ReceiptDocument{
		Company: &entity.Company{Name: "Ferretería Temuco", RUT: "76354771-K"},
		Branch:  &entity.Branch{Name: "Centro", Address: "Av. Alemania 100"},
		Sale:    sale,
		Products: map[string]*entity.Product{
			"p1": {SKU: "MAR-01", Name: "Martillo"},
		},
		Cashier: "caja1",
	}

	out, err := NewReceiptRenderer().RenderSaleReceipt(context.Background(), doc)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderSaleReceipt_Incompleta(t *testing.T) {
	_, err := NewReceiptRenderer().RenderSaleReceipt(context.Background(), inventory.ReceiptDocument{})
	assert.Error(t, err)
}
