// Package main implements a mock DVF dataset mirror for local development.
// It serves synthetic yearly "valeurs foncières" archives in the government
// layout (a ZIP holding one pipe-separated TXT file) so imports can run
// without downloading the real multi-gigabyte files.
package main

import (
	"archive/zip"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/donaldgifford/dvf-estimator/pkg/logger"
)

// header is a subset of the government columns, in file order. Columns the
// importer ignores are kept so the parser sees a realistic line.
var header = []string{
	"Identifiant de document", "Date mutation", "Nature mutation", "Valeur fonciere",
	"No voie", "B/T/Q", "Type de voie", "Code voie", "Voie", "Code postal", "Commune",
	"Code departement", "Code commune", "Nombre de lots", "Code type local", "Type local",
	"Surface reelle bati", "Nombre pieces principales", "Nature culture", "Surface terrain",
}

type area struct {
	postalCode   string
	municipality string
	department   string
	housePerM2   float64
	flatPerM2    float64
}

var areas = []area{
	{"72000", "LE MANS", "72", 2100, 1900},
	{"72100", "LE MANS", "72", 1950, 1750},
	{"72190", "COULAINES", "72", 1800, 1600},
	{"72230", "ARNAGE", "72", 1700, 1500},
	{"75011", "PARIS 11", "75", 10500, 10200},
}

var streets = []struct{ kind, name string }{
	{"RUE", "NATIONALE"},
	{"AV", "DU GENERAL DE GAULLE"},
	{"BD", "DEMOROY"},
	{"RUE", "DES MARAICHERS"},
	{"ALL", "DES TILLEULS"},
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	rows := flag.Int("rows", 2000, "mutation lines per yearly dataset")
	seed := flag.Uint64("seed", 1, "random seed for generated datasets")
	flag.Parse()

	log := logger.New("debug", "text")

	srv := newServer(*rows, *seed, log)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /dvf/{year}/valeursfoncieres.zip", srv.datasetHandler)

	addr := fmt.Sprintf(":%d", *port)
	log.Info("starting mock DVF mirror", "addr", addr, "rows", *rows)

	hs := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(log, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	if err := hs.ListenAndServe(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

type server struct {
	rows int
	seed uint64
	log  *slog.Logger

	mu       sync.Mutex
	archives map[int][]byte
}

func newServer(rows int, seed uint64, log *slog.Logger) *server {
	return &server{rows: rows, seed: seed, log: log, archives: make(map[int][]byte)}
}

func requestLogger(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *server) datasetHandler(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year < 2014 || year > time.Now().Year() {
		http.Error(w, "unknown dataset", http.StatusNotFound)
		return
	}

	data, err := s.archive(year)
	if err != nil {
		s.log.Error("building dataset", "year", year, "error", err)
		http.Error(w, "building dataset failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	w.Write(data)
	s.log.Info("dataset served", "year", year, "bytes", len(data))
}

// archive returns the zipped dataset for year, building it once.
func (s *server) archive(year int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data, ok := s.archives[year]; ok {
		return data, nil
	}
	data, err := buildArchive(year, s.rows, s.seed)
	if err != nil {
		return nil, err
	}
	s.archives[year] = data
	return data, nil
}

func buildArchive(year, rows int, seed uint64) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	f, err := zw.Create(fmt.Sprintf("valeursfoncieres-%d.txt", year))
	if err != nil {
		return nil, fmt.Errorf("creating archive entry: %w", err)
	}
	if err := writeDataset(f, year, rows, seed); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}

// writeDataset writes a header and rows mutation lines. The same year and
// seed always produce the same file. Every 20th line is an exchange, which
// the importer filters out, and every 25th line repeats the previous one the
// way multi-lot mutations do in the real files.
func writeDataset(w io.Writer, year, rows int, seed uint64) error {
	rng := rand.New(rand.NewPCG(seed, uint64(year)))

	var b strings.Builder
	b.WriteString(strings.Join(header, "|"))
	b.WriteByte('\n')

	prev := ""
	for i := range rows {
		if i%25 == 24 && prev != "" {
			b.WriteString(prev)
			continue
		}
		line := mutationLine(rng, year, i)
		b.WriteString(line)
		prev = line
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	return nil
}

func mutationLine(rng *rand.Rand, year, i int) string {
	a := areas[i%len(areas)]
	st := streets[rng.IntN(len(streets))]

	nature := "Vente"
	if i%20 == 19 {
		nature = "Echange"
	}

	kind, kindCode, perM2 := "Maison", "1", a.housePerM2
	surface := 70 + rng.IntN(110)
	land := strconv.Itoa(200 + rng.IntN(1200))
	if rng.IntN(3) == 0 {
		kind, kindCode, perM2 = "Appartement", "2", a.flatPerM2
		surface = 25 + rng.IntN(80)
		land = ""
	}

	// +/- 15% around the area price.
	price := float64(surface) * perM2 * (0.85 + 0.3*rng.Float64())
	date := time.Date(year, time.Month(1+rng.IntN(12)), 1+rng.IntN(28), 0, 0, 0, 0, time.UTC)

	cols := []string{
		"",
		date.Format("02/01/2006"),
		nature,
		strings.Replace(strconv.FormatFloat(price, 'f', 2, 64), ".", ",", 1),
		strconv.Itoa(i + 1),
		"",
		st.kind,
		fmt.Sprintf("%04d", rng.IntN(9999)),
		st.name,
		a.postalCode,
		a.municipality,
		a.department,
		"181",
		"0",
		kindCode,
		kind,
		strconv.Itoa(surface),
		strconv.Itoa(max(1, surface/22)),
		"S",
		land,
	}
	return strings.Join(cols, "|") + "\n"
}
