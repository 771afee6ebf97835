package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-pedidos/internal/application/dto"
)

func TestPageRequest_Normalize(t *testing.T) {
	cases := []struct {
		name string
		in   dto.PageRequest
		want dto.PageRequest
	}{
		{"vacío usa el límite por defecto", dto.PageRequest{}, dto.PageRequest{Limit: dto.DefaultLimit}},
		{"límite excesivo se recorta", dto.PageRequest{Limit: 500, Offset: 40}, dto.PageRequest{Limit: dto.MaxLimit, Offset: 40}},
		{"offset negativo pasa a cero", dto.PageRequest{Limit: 5, Offset: -3}, dto.PageRequest{Limit: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.Normalize()
			assert.Equal(t, tc.want, p)
		})
	}
}
