// match_manufacturers concilia nombres de fabricante en texto libre contra las empresas registradas.
// Por cada nombre imprime la coincidencia exacta o las sugerencias ordenadas por similitud.
//
// Uso:
//
//	go run ./cmd/match_manufacturers -names fabricantes.txt [-companies empresas.txt] [-latin1] [-threshold 65]
//
// Sin -companies los candidatos se leen de la base de datos (DATABASE_URL o DB_*).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-pedidos/internal/domain/matching"
	"github.com/jhoicas/inventario-pedidos/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-pedidos/pkg/config"
)

func main() {
	namesPath := flag.String("names", "", "archivo con un nombre de fabricante por línea")
	companiesPath := flag.String("companies", "", "archivo con los nombres de empresas candidatas (opcional)")
	latin1 := flag.Bool("latin1", false, "los archivos están en ISO-8859-1")
	threshold := flag.Int("threshold", matching.DefaultThreshold, "umbral de similitud (1-100)")
	flag.Parse()

	if *namesPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *threshold < 1 || *threshold > 100 {
		fmt.Fprintf(os.Stderr, "Umbral fuera de rango: %d\n", *threshold)
		os.Exit(2)
	}

	names, err := readLines(*namesPath, *latin1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer nombres: %v\n", err)
		os.Exit(1)
	}

	var candidates []string
	if *companiesPath != "" {
		candidates, err = readLines(*companiesPath, *latin1)
	} else {
		candidates, err = companyNames(context.Background())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer empresas: %v\n", err)
		os.Exit(1)
	}

	report(os.Stdout, names, candidates, *threshold)
}

func report(w io.Writer, names, candidates []string, threshold int) {
	exact, suggested, none := 0, 0, 0
	for _, name := range names {
		if c, ok := matching.ExactMatch(name, candidates); ok {
			fmt.Fprintf(w, "%s\t= %s\n", name, c)
			exact++
			continue
		}
		matches := matching.Top(matching.FindMatches(name, candidates, threshold), matching.MaxSuggestions)
		if len(matches) == 0 {
			fmt.Fprintf(w, "%s\t(sin coincidencias)\n", name)
			none++
			continue
		}
		fmt.Fprintf(w, "%s\n", name)
		for i, m := range matches {
			fmt.Fprintf(w, "  %d) %s [%.1f]\n", i+1, m.Name, m.Score)
		}
		suggested++
	}
	fmt.Fprintf(w, "\n%d exactas, %d con sugerencias, %d sin coincidencias\n", exact, suggested, none)
}

func readLines(path string, latin1 bool) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	seen := make(map[string]struct{})
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if _, ok := seen[strings.ToLower(line)]; ok {
			continue
		}
		seen[strings.ToLower(line)] = struct{}{}
		out = append(out, line)
	}
	return out, sc.Err()
}

func companyNames(ctx context.Context) ([]string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	defer pool.Close()
	return postgres.NewCompanyRepository(pool).ListNames(ctx)
}
