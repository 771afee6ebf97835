// Package barcode resuelve códigos escaneados contra lotes, ubicaciones y partes.
package barcode

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-pedidos/internal/application/dto"
	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
	"github.com/jhoicas/inventario-pedidos/internal/plugins"
)

// ScanUseCase prueba los plugins de código de barras en orden y devuelve el primero que reconoce el código.
type ScanUseCase struct {
	plugins   []plugins.BarcodePlugin
	stockRepo repository.StockItemRepository
	locRepo   repository.LocationRepository
	partRepo  repository.PartRepository
	log       zerolog.Logger
}

// NewScanUseCase construye el caso de uso con los plugins del registro.
func NewScanUseCase(
	registry *plugins.Registry,
	stockRepo repository.StockItemRepository,
	locRepo repository.LocationRepository,
	partRepo repository.PartRepository,
	log zerolog.Logger,
) *ScanUseCase {
	return &ScanUseCase{
		plugins:   plugins.BarcodePlugins(registry),
		stockRepo: stockRepo,
		locRepo:   locRepo,
		partRepo:  partRepo,
		log:       log.With().Str("component", "barcode").Logger(),
	}
}

// Scan decodifica el código. ErrNotFound si ningún plugin lo reconoce o si el objeto referenciado no existe.
func (uc *ScanUseCase) Scan(ctx context.Context, code string) (*dto.BarcodeResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.NewValidationError("barcode", "el código es requerido")
	}
	for _, p := range uc.plugins {
		if !p.Validate(code) {
			continue
		}
		res, err := p.Decode(code)
		if err != nil {
			uc.log.Debug().Err(err).Str("plugin", p.Name()).Msg("plugin validó pero no pudo decodificar")
			continue
		}
		if err := uc.checkRefs(ctx, res); err != nil {
			return nil, err
		}
		return &dto.BarcodeResponse{
			Plugin:      p.Name(),
			Hash:        plugins.Hash(code),
			StockItemID: res.StockItemID,
			LocationID:  res.LocationID,
			PartID:      res.PartID,
		}, nil
	}
	return nil, domain.ErrNotFound
}

func (uc *ScanUseCase) checkRefs(ctx context.Context, res plugins.BarcodeResult) error {
	if res.StockItemID != "" {
		it, err := uc.stockRepo.GetByID(ctx, res.StockItemID)
		if err != nil {
			return err
		}
		if it == nil {
			return domain.ErrNotFound
		}
	}
	if res.LocationID != "" {
		loc, err := uc.locRepo.GetByID(ctx, res.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrNotFound
		}
	}
	if res.PartID != "" {
		part, err := uc.partRepo.GetByID(ctx, res.PartID)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}
