package corpus

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc1 = `<corpus><sentence><n wd="uno" pos="z"/></sentence></corpus>`
const doc2 = `<corpus><sentence><n wd="dos" pos="z"/></sentence></corpus>`

func collect(t *testing.T, filename string) []Doc {
	t.Helper()
	ch := make(chan Doc)
	docs := make([]Doc, 0)
	done := make(chan bool)
	go func() {
		for doc := range ch {
			docs = append(docs, doc)
		}
		close(done)
	}()
	err := Walk(filename, ch)
	close(ch)
	<-done
	require.NoError(t, err)
	return docs
}

func TestWalkXML(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "a.xml")
	require.NoError(t, os.WriteFile(filename, []byte(doc1), 0666))

	docs := collect(t, filename)
	require.Len(t, docs, 1)
	assert.Equal(t, filename, docs[0].Name)
	assert.Equal(t, doc1, string(docs[0].Data))
}

func TestWalkXMLGz(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "a.xml.gz")
	fp, err := os.Create(filename)
	require.NoError(t, err)
	w := gzip.NewWriter(fp)
	_, err = w.Write([]byte(doc1))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, fp.Close())

	docs := collect(t, filename)
	require.Len(t, docs, 1)
	assert.Equal(t, doc1, string(docs[0].Data))
}

func TestWalkTarGz(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "c.tar.gz")
	fp, err := os.Create(filename)
	require.NoError(t, err)
	zw := gzip.NewWriter(fp)
	tw := tar.NewWriter(zw)
	for _, f := range []struct{ name, data string }{
		{"a.xml", doc1},
		{"README", "not xml"},
		{"b.xml", doc2},
	} {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: f.name,
			Mode: 0666,
			Size: int64(len(f.data)),
		}))
		_, err = tw.Write([]byte(f.data))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, zw.Close())
	require.NoError(t, fp.Close())

	docs := collect(t, filename)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.xml", docs[0].Name)
	assert.Equal(t, doc1, string(docs[0].Data))
	assert.Equal(t, "b.xml", docs[1].Name)
	assert.Equal(t, doc2, string(docs[1].Data))
}

func TestWalkZip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "c.zip")
	fp, err := os.Create(filename)
	require.NoError(t, err)
	zw := zip.NewWriter(fp)
	for _, f := range []struct{ name, data string }{
		{"a.xml", doc1},
		{"notes.txt", "not xml"},
		{"b.xml", doc2},
	} {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, fp.Close())

	docs := collect(t, filename)
	require.Len(t, docs, 2)
	assert.Equal(t, doc1, string(docs[0].Data))
	assert.Equal(t, doc2, string(docs[1].Data))
}

func TestWalkUnknown(t *testing.T) {
	ch := make(chan Doc, 1)
	err := Walk("corpus.pdf", ch)
	assert.Error(t, err)
}

func TestBasename(t *testing.T) {
	assert.Equal(t, "ancora", Basename("/data/ancora.xml"))
	assert.Equal(t, "ancora", Basename("ancora.xml.gz"))
	assert.Equal(t, "ancora", Basename("ancora.tar.gz"))
	assert.Equal(t, "ancora", Basename("ancora.dact"))
	assert.Equal(t, "ancora", Basename("ancora.data.dz"))
	assert.Equal(t, "ancora", Basename("ancora"))
}
