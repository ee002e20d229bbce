package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/caret/internal/engine"
)

// Document is a file opened for editing: its engine plus what is needed to
// write it back.
type Document struct {
	// Engine is the text buffer and editing engine.
	Engine *engine.Engine

	mu            sync.Mutex
	path          string
	encoding      Encoding
	savedRevision engine.RevisionID
}

// NewScratchDocument creates a document with no file behind it.
func NewScratchDocument(opts ...engine.Option) *Document {
	e := engine.New(opts...)
	return &Document{Engine: e, savedRevision: e.RevisionID()}
}

// OpenDocument reads path into a new document. A missing file gives an
// empty document that will be created on save.
func OpenDocument(path string, opts ...engine.Option) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	text, enc, err := readFile(abs)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, NewOperationError("open", abs, err)
	}

	e := engine.New(append(opts, engine.WithContent(text))...)
	return &Document{
		Engine:        e,
		path:          abs,
		encoding:      enc,
		savedRevision: e.RevisionID(),
	}, nil
}

func readFile(path string) (string, Encoding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", EncodingUTF8, err
	}
	enc := DetectEncoding(data)
	text, err := Decode(data, enc)
	return text, enc, err
}

// Path returns the absolute file path, empty for a scratch document.
func (d *Document) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.path
}

// Name returns the file name, or "Untitled".
func (d *Document) Name() string {
	if p := d.Path(); p != "" {
		return filepath.Base(p)
	}
	return "Untitled"
}

// Encoding returns the on-disk encoding.
func (d *Document) Encoding() Encoding {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.encoding
}

// IsScratch returns true if the document has no file.
func (d *Document) IsScratch() bool {
	return d.Path() == ""
}

// IsModified reports whether the text changed since it was loaded or
// saved.
func (d *Document) IsModified() bool {
	d.mu.Lock()
	saved := d.savedRevision
	d.mu.Unlock()
	return d.Engine.RevisionID() != saved
}

// Save writes the document to its path.
func (d *Document) Save() error {
	path := d.Path()
	if path == "" {
		return NewOperationError("save", "", ErrNoPath)
	}
	return d.SaveAs(path)
}

// SaveAs writes the document to path and makes path its file. The write
// goes through a temporary file renamed over the target.
func (d *Document) SaveAs(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return NewOperationError("save", path, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	snap := d.Engine.Snapshot()
	data, err := Encode(snap.Text(), d.encoding)
	if err != nil {
		return NewOperationError("save", abs, err)
	}
	if err := writeFileAtomic(abs, data); err != nil {
		return NewOperationError("save", abs, err)
	}

	d.path = abs
	d.savedRevision = snap.RevisionID()
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Reload replaces the text with the file's current content. Unless force
// is set it refuses to discard unsaved changes. Carets are kept where they
// were, clamped to the new length. A file identical to the text, such as
// one just saved, leaves the document untouched.
func (d *Document) Reload(force bool) error {
	path := d.Path()
	if path == "" {
		return NewOperationError("reload", "", ErrNoPath)
	}
	if !force && d.IsModified() {
		return NewOperationError("reload", path, ErrUnsavedChanges)
	}

	text, enc, err := readFile(path)
	if err != nil {
		return NewOperationError("reload", path, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if enc == d.encoding && text == d.Engine.Text() {
		d.savedRevision = d.Engine.RevisionID()
		return nil
	}

	regions := d.Engine.SelRegions()
	d.Engine.SetContent(text)
	d.Engine.SetSelection(regions...)
	d.encoding = enc
	d.savedRevision = d.Engine.RevisionID()
	return nil
}
