// Package corpus fans the XML documents out of a corpus container: plain
// and gzipped XML files, tar and zip archives of XML files, DACT corpora,
// and compact corpora.
package corpus

import (
	"github.com/pebbe/compactcorpus"
	"github.com/pebbe/dbxml"

	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Doc is one XML document from a corpus container.
type Doc struct {
	Name string
	Data []byte
}

var suffixes = []string{
	".dact",
	".data.dz",
	".index",
	".xml",
	".xml.gz",
	".tar",
	".tar.gz",
	".tgz",
	".zip",
}

// Suffixes lists the recognized filename extensions, for usage texts.
func Suffixes() []string {
	return suffixes
}

// Basename strips the directory and any recognized extension from a
// corpus filename.
func Basename(name string) string {
	name = filepath.Base(name)
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}

// Walk sends every XML document in the named file on ch. The channel is
// left open: the caller owns it and may walk more files into it.
func Walk(filename string, ch chan<- Doc) error {
	switch {
	case strings.HasSuffix(filename, ".dact"):
		return walkDact(filename, ch)
	case strings.HasSuffix(filename, ".index"), strings.HasSuffix(filename, ".data.dz"):
		return walkCompact(filename, ch)
	case strings.HasSuffix(filename, ".xml"):
		data, err := os.ReadFile(filename)
		if err != nil {
			return err
		}
		ch <- Doc{Name: filename, Data: data}
		return nil
	case strings.HasSuffix(filename, ".xml.gz"):
		return walkGz(filename, ch)
	case strings.HasSuffix(filename, ".tar"):
		fp, err := os.Open(filename)
		if err != nil {
			return err
		}
		defer fp.Close()
		return walkTar(fp, ch)
	case strings.HasSuffix(filename, ".tar.gz"), strings.HasSuffix(filename, ".tgz"):
		fp, err := os.Open(filename)
		if err != nil {
			return err
		}
		defer fp.Close()
		r, err := gzip.NewReader(fp)
		if err != nil {
			return err
		}
		defer r.Close()
		return walkTar(r, ch)
	case strings.HasSuffix(filename, ".zip"):
		return walkZip(filename, ch)
	}
	return fmt.Errorf("unknown file type for %s", filename)
}

func walkDact(filename string, ch chan<- Doc) error {
	db, err := dbxml.OpenRead(filename)
	if err != nil {
		return err
	}
	defer db.Close()
	docs, err := db.All()
	if err != nil {
		return err
	}
	for docs.Next() {
		ch <- Doc{Name: docs.Name(), Data: []byte(docs.Content())}
	}
	return docs.Error()
}

func walkCompact(filename string, ch chan<- Doc) error {
	corpus, err := compactcorpus.Open(filename)
	if err != nil {
		return err
	}
	it, err := corpus.NewRange()
	if err != nil {
		return err
	}
	for it.HasNext() {
		name, data := it.Next()
		ch <- Doc{Name: name, Data: data}
	}
	return nil
}

func walkGz(filename string, ch chan<- Doc) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	r, err := gzip.NewReader(fp)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if err := r.Close(); err != nil {
		return err
	}
	ch <- Doc{Name: filename, Data: data}
	return nil
}

func walkTar(in io.Reader, ch chan<- Doc) error {
	r := tar.NewReader(in)
	for {
		h, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !strings.HasSuffix(h.Name, ".xml") {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		ch <- Doc{Name: h.Name, Data: data}
	}
}

func walkZip(filename string, ch chan<- Doc) error {
	r, err := zip.OpenReader(filename)
	if err != nil {
		return err
	}
	defer r.Close()
	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		fp, err := f.Open()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(fp)
		fp.Close()
		if err != nil {
			return err
		}
		ch <- Doc{Name: f.Name, Data: data}
	}
	return nil
}
