package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joachez17/bodega-api/internal/application/dto"
	"github.com/joachez17/bodega-api/pkg/validator"
)

func TestValidateStruct_RecepcionValida(t *testing.T) {
	req := dto.RegisterReceptionRequest{
		SupplierID: "S1",
		Lines:      []dto.MovementLineRequest{{ProductCode: "P1", Quantity: 3}},
	}
	assert.Nil(t, validator.ValidateStruct(req))
}

func TestValidateStruct_CamposFaltantes(t *testing.T) {
	req := dto.RegisterReceptionRequest{
		Lines: []dto.MovementLineRequest{{ProductCode: "", Quantity: 3}},
	}
	errs := validator.ValidateStruct(req)
	require.Len(t, errs, 2)
	assert.Equal(t, "RegisterReceptionRequest.SupplierID", errs[0].FailedField)
	assert.Equal(t, "required", errs[0].Tag)
	assert.Contains(t, validator.Message(errs), "ProductCode")
}

func TestValidateStruct_CodigoConEspacios(t *testing.T) {
	req := dto.RackRequest{Code: "R 1"}
	errs := validator.ValidateStruct(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "code", errs[0].Tag)
}
