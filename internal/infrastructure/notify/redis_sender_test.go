package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joachez17/bodega-api/internal/domain/entity"
)

func TestEncodeAlert_Formato(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	payload, err := encodeAlert(entity.StockAlert{
		ProductCode: "P1", ProductName: "Guantes", CurrentStock: 4, MinimumStock: 5,
		MovementID: "m-1", GeneratedAt: at,
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, "stock_alert", got["type"])
	data := got["data"].(map[string]any)
	assert.Equal(t, "P1", data["product_code"])
	assert.EqualValues(t, 4, data["current_stock"])
	assert.NotContains(t, data, "actor_id", "actor vacío se omite")
}
