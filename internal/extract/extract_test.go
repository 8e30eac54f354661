package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

type fakeStore struct {
	objects map[string]string
}

func (f *fakeStore) Save(ctx context.Context, fileName string, r io.Reader) (string, int64, string, error) {
	return "", 0, "", errors.New("not implemented")
}

func (f *fakeStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	body, ok := f.objects[storageKey]
	if !ok {
		return nil, errors.New("object not found: " + storageKey)
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	doc := `<?xml version="1.0"?><w:document><w:body><w:p><w:r><w:t>` + body + `</w:t></w:r></w:p></w:body></w:document>`
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestFromBytes_DocxText(t *testing.T) {
	data := buildDocx(t, "Développeur Go, 3 ans d'expérience")

	text, err := FromBytes(context.Background(), data, mimeDOCX, "cv.docx")
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	if !strings.Contains(text, "Développeur Go") {
		t.Fatalf("missing content: %q", text)
	}
}

func TestFromBytes_ZipDocxNormalizes(t *testing.T) {
	data := buildDocx(t, "contenu")

	if _, err := FromBytes(context.Background(), data, "application/zip", "cv.docx"); err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
}

func TestTextSourceReadsExtractedCompanion(t *testing.T) {
	store := &fakeStore{objects: map[string]string{
		"abc123_cv.pdf.extracted.txt": "Développeur Go, 3 ans d'expérience",
	}}

	text, err := TextSource{Store: store}.Text(context.Background(), "abc123_cv.pdf")
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if text != "Développeur Go, 3 ans d'expérience" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestTextSourceMissingObject(t *testing.T) {
	store := &fakeStore{objects: map[string]string{}}

	if _, err := (TextSource{Store: store}).Text(context.Background(), "missing_cv.pdf"); err == nil {
		t.Fatal("expected error for missing extracted text")
	}
}

func TestFromBytes_RealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = FromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if err == nil {
		t.Fatal("expected unsupported mime error for zip")
	}
	if !strings.Contains(err.Error(), "unsupported mime type: application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}
