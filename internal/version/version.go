// Package version expone la versión del servidor. Commit y Date se inyectan con -ldflags:
//
//	go build -ldflags "-X github.com/jhoicas/inventario-pedidos/internal/version.Commit=$(git rev-parse --short HEAD)"
package version

// Version versión del software.
const Version = "0.1.3"

// APIVersion versión del contrato HTTP.
const APIVersion = 1

var (
	// Commit hash corto del commit compilado.
	Commit = ""
	// Date fecha del commit (YYYY-MM-DD).
	Date = ""
)

// Information valor de versión que se entrega a los handlers.
type Information struct {
	Server       string
	InstanceName string
	Commit       string
	CommitDate   string
	APIVersion   int
}

// Info arma la información de versión para la instancia dada.
func Info(instanceName string) Information {
	return Information{
		Server:       Version,
		InstanceName: instanceName,
		Commit:       Commit,
		CommitDate:   Date,
		APIVersion:   APIVersion,
	}
}
