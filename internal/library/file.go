package library

import (
	"sync"

	"audioquality/internal/host"
	"audioquality/internal/tagging"
)

// File is a media file on disk with an in-memory tag store.
type File struct {
	path string
	meta *host.MemoryMetadata

	mu         sync.Mutex
	assessment *tagging.Assessment
}

// NewFile returns a File whose metadata starts as a copy of tags.
func NewFile(path string, tags map[string]string) *File {
	return &File{path: path, meta: host.NewMemoryMetadata(tags)}
}

func (f *File) Path() string { return f.path }

func (f *File) Metadata() host.Metadata { return f.meta }

// RecordAssessment keeps the score computed by the tagging adapter.
func (f *File) RecordAssessment(a tagging.Assessment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assessment = &a
}

// Assessment returns the recorded assessment, if any.
func (f *File) Assessment() (tagging.Assessment, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.assessment == nil {
		return tagging.Assessment{}, false
	}
	return *f.assessment, true
}

// Tags returns a copy of the file's current tags.
func (f *File) Tags() map[string]string {
	return f.meta.Snapshot()
}
