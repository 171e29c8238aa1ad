package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginReq struct {
	OfficerSVC string `json:"officerSVC" validate:"required"`
	Password   string `json:"Password" validate:"required"`
}

type nested struct {
	FormData struct {
		Tourist struct {
			Name string `json:"name" validate:"required"`
		} `json:"tourist"`
	} `json:"formData"`
}

func TestStruct_OK(t *testing.T) {
	require.NoError(t, Struct(&loginReq{OfficerSVC: "1111", Password: "pw"}))
}

func TestStruct_UsesJSONNames(t *testing.T) {
	err := Struct(&loginReq{OfficerSVC: "1111"})
	require.Error(t, err)

	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Password", vErr.Field)
	assert.Equal(t, "required", vErr.Tag)
	assert.Equal(t, "Password is required", vErr.Message)
}

func TestStruct_NestedNamespace(t *testing.T) {
	err := Struct(&nested{})
	require.Error(t, err)
	assert.Equal(t, "formData.tourist.name is required", err.Error())
}
