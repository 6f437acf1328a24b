package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rug-compling/ancoragraph/ancora"

	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"time"
)

const MAXBODY = 64 << 20

// RowT is one tree in a response.
type RowT struct {
	ID       string `json:"id"`
	Tree     string `json:"tree,omitempty"`
	Sentence string `json:"sentence,omitempty"`
}

var (
	opt_addr = flag.String("addr", ":8067", "listen address")
)

func main() {
	flag.Parse()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", handleHealth)
	r.Post("/trees", handleTrees)

	srv := &http.Server{
		Addr:         *opt_addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	fmt.Fprintf(os.Stderr, "ancoraserve: listening on %s\n", *opt_addr)
	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleTrees parses the AnCora document in the request body and returns
// one row per tree. Query parameters: pos and word filter on a
// preterminal match, plain returns the sentence text instead of the
// bracketed tree, simple selects the simplified tagset, enc overrides the
// character encoding.
func handleTrees(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MAXBODY))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var posPattern, wordPattern *regexp.Regexp
	if s := r.FormValue("pos"); s != "" {
		posPattern, err = regexp.Compile(s)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if s := r.FormValue("word"); s != "" {
		wordPattern, err = regexp.Compile(s)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	plain := r.FormValue("plain") != ""

	opts := &ancora.Options{
		Simplified: r.FormValue("simple") != "",
		Encoding:   r.FormValue("enc"),
	}
	rd, err := ancora.NewReader(bytes.NewReader(body), opts)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer rd.Close()

	rows := make([]RowT, 0)
	for {
		t, err := rd.ReadTree()
		if err == io.EOF {
			break
		}

		if !ancora.Matches(t, posPattern, wordPattern) {
			continue
		}

		row := RowT{}
		if label, ok := t.Label.(ancora.HasAnnotation); ok {
			row.ID = label.Annotation(ancora.SentenceIDAnnotation)
		}
		if plain {
			row.Sentence = t.Yield()
		} else {
			row.Tree = t.String()
		}
		rows = append(rows, row)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
