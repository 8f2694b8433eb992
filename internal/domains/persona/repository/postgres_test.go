package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personas-api/internal/domains/persona/model"
)

func TestBuildFilter_Empty(t *testing.T) {
	where, args, err := buildFilter(Filter{})
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildFilter_SingleIntColumn(t *testing.T) {
	where, args, err := buildFilter(Filter{"edad": "34"})
	require.NoError(t, err)
	assert.Equal(t, " WHERE edad = $1", where)
	assert.Equal(t, []any{int64(34)}, args)
}

func TestBuildFilter_MultipleKeysSortedAndConjoined(t *testing.T) {
	where, args, err := buildFilter(Filter{"nombre": "Luis", "edad": "34"})
	require.NoError(t, err)

	// keys are sorted so the SQL is stable regardless of map order
	assert.Equal(t, " WHERE edad = $1 AND nombre = $2", where)
	assert.Equal(t, []any{int64(34), "Luis"}, args)
}

func TestBuildFilter_UnknownField(t *testing.T) {
	_, _, err := buildFilter(Filter{"altura": "180"})
	require.Error(t, err)

	var filterErr *model.FilterError
	require.True(t, errors.As(err, &filterErr))
	assert.Equal(t, "altura", filterErr.Campo)
	assert.Empty(t, filterErr.Motivo)
}

func TestBuildFilter_BadValueForColumnType(t *testing.T) {
	for campo, valor := range map[string]string{
		"edad":             "treinta",
		"id":               "abc",
		"es_activo":        "si",
		"fecha_nacimiento": "31-12-2000",
	} {
		_, _, err := buildFilter(Filter{campo: valor})
		require.Error(t, err, campo)

		var filterErr *model.FilterError
		require.True(t, errors.As(err, &filterErr), campo)
		assert.Equal(t, campo, filterErr.Campo)
		assert.NotEmpty(t, filterErr.Motivo, campo)
	}
}

func TestBuildFilter_CoercesBoolAndDate(t *testing.T) {
	fecha, err := model.ParseFecha("1990-05-20")
	require.NoError(t, err)

	where, args, buildErr := buildFilter(Filter{"es_activo": "true", "fecha_nacimiento": "1990-05-20"})
	require.NoError(t, buildErr)
	assert.Equal(t, " WHERE es_activo = $1 AND fecha_nacimiento = $2", where)
	assert.Equal(t, []any{true, fecha.Time}, args)
}
