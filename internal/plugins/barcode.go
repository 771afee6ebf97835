package plugins

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// BarcodeResult referencias que un plugin extrajo de un código escaneado.
type BarcodeResult struct {
	StockItemID string
	LocationID  string
	PartID      string
}

// BarcodePlugin decodifica códigos de barras de un formato concreto.
type BarcodePlugin interface {
	Plugin
	// Validate true si el código tiene el formato del plugin.
	Validate(barcode string) bool
	// Decode extrae las referencias; solo se llama si Validate fue true.
	Decode(barcode string) (BarcodeResult, error)
}

// Hash huella estable del contenido del código (sha256 en hex).
func Hash(barcode string) string {
	sum := sha256.Sum256([]byte(barcode))
	return hex.EncodeToString(sum[:])
}

// ─── InvenTreeBarcode ─────────────────────────────────────────────────────────

// InvenTreeBarcode códigos JSON generados por el propio sistema:
// {"stockitem": "..."} / {"stocklocation": "..."} / {"part": "..."}.
type InvenTreeBarcode struct{}

// Name nombre del plugin.
func (InvenTreeBarcode) Name() string { return "InvenTreeBarcode" }

// Validate acepta un objeto JSON con al menos una de las llaves conocidas.
func (p InvenTreeBarcode) Validate(barcode string) bool {
	r, err := p.Decode(barcode)
	return err == nil && (r.StockItemID != "" || r.LocationID != "" || r.PartID != "")
}

// Decode interpreta el JSON. Los valores pueden venir como string o número.
func (InvenTreeBarcode) Decode(barcode string) (BarcodeResult, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(barcode)), &raw); err != nil {
		return BarcodeResult{}, fmt.Errorf("barcode: JSON inválido: %w", err)
	}
	var r BarcodeResult
	for key, v := range raw {
		id := idString(v)
		switch strings.ToLower(key) {
		case "stockitem":
			r.StockItemID = id
		case "stocklocation":
			r.LocationID = id
		case "part":
			r.PartID = id
		}
	}
	return r, nil
}

// idString acepta "abc", 12 o {"id": ...}.
func idString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	case map[string]any:
		if id, ok := t["id"]; ok {
			return idString(id)
		}
	}
	return ""
}

// ─── DigikeyBarcode ───────────────────────────────────────────────────────────

// DigikeyBarcode reservado para etiquetas de DigiKey; aún no reconoce ningún código.
type DigikeyBarcode struct{}

// Name nombre del plugin.
func (DigikeyBarcode) Name() string { return "DigikeyBarcode" }

// Validate siempre false.
func (DigikeyBarcode) Validate(string) bool { return false }

// Decode no soportado.
func (DigikeyBarcode) Decode(string) (BarcodeResult, error) {
	return BarcodeResult{}, fmt.Errorf("barcode: formato DigiKey no soportado")
}

// RegisterBuiltins registra los plugins incluidos con el servidor.
func RegisterBuiltins(r *Registry) error {
	builtins := []struct {
		capability string
		name       string
		ctor       Constructor
	}{
		{CapabilityBarcode, InvenTreeBarcode{}.Name(), func() Plugin { return InvenTreeBarcode{} }},
		{CapabilityBarcode, DigikeyBarcode{}.Name(), func() Plugin { return DigikeyBarcode{} }},
	}
	for _, b := range builtins {
		if err := r.Register(b.capability, b.name, b.ctor); err != nil {
			return err
		}
	}
	return nil
}

// BarcodePlugins devuelve los plugins de la capacidad barcode que implementan BarcodePlugin.
func BarcodePlugins(r *Registry) []BarcodePlugin {
	var out []BarcodePlugin
	for _, p := range r.Build(CapabilityBarcode) {
		if bp, ok := p.(BarcodePlugin); ok {
			out = append(out, bp)
		}
	}
	return out
}
