package dto

// VersionResponse información de versión del servidor.
type VersionResponse struct {
	Server       string `json:"server"`
	InstanceName string `json:"instance"`
	Commit       string `json:"commit_hash,omitempty"`
	CommitDate   string `json:"commit_date,omitempty"`
	APIVersion   int    `json:"apiVersion"`
}

// BarcodeRequest body para POST /api/barcode.
type BarcodeRequest struct {
	Barcode string `json:"barcode"`
}

// BarcodeResponse resultado de decodificar un código de barras.
type BarcodeResponse struct {
	Plugin      string `json:"plugin"`
	Hash        string `json:"hash"`
	StockItemID string `json:"stockitem,omitempty"`
	LocationID  string `json:"stocklocation,omitempty"`
	PartID      string `json:"part,omitempty"`
}
