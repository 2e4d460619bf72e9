package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated by content-based hashing of creation-time attributes, so an
// identifier can be minted without any storage backend being reachable.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// NewProjectID derives a project identifier from the project name and its
// creation instant.
func NewProjectID(name string, createdAt time.Time) ID {
	return IDFromContent("project:" + name + ":" + strconv.FormatInt(createdAt.UnixNano(), 10))
}

// NewFolderID derives a folder identifier from the folder name and its
// creation instant.
func NewFolderID(name string, createdAt time.Time) ID {
	return IDFromContent("folder:" + name + ":" + strconv.FormatInt(createdAt.UnixNano(), 10))
}

// ImageKind identifies which image sequence of a project an entry belongs to.
type ImageKind int

const (
	// ImageBefore addresses the "before" image sequence.
	ImageBefore ImageKind = iota + 1
	// ImageAfter addresses the "after" image sequence.
	ImageAfter
)

// Project represents a before/after comparison case. Images are stored inline
// as complete data-URL strings, so a project is fully portable as one unit.
type Project struct {
	Id           ID            `json:"id"`
	Name         string        `json:"name"`
	Date         string        `json:"date"` // User-supplied case date, free-form
	BeforeImages []string      `json:"beforeImages"`
	AfterImages  []string      `json:"afterImages"`
	Notes        string        `json:"notes,omitempty"`
	FolderId     ID            `json:"folderId,omitempty"` // 0 means unfiled
	Measurements []Measurement `json:"measurements,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"` // Immutable, default sort key
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Images returns the image sequence addressed by kind.
// Returns nil for an unknown kind.
func (p *Project) Images(kind ImageKind) []string {
	switch kind {
	case ImageBefore:
		return p.BeforeImages
	case ImageAfter:
		return p.AfterImages
	}
	return nil
}

// setImages replaces the image sequence addressed by kind.
func (p *Project) setImages(kind ImageKind, images []string) {
	switch kind {
	case ImageBefore:
		p.BeforeImages = images
	case ImageAfter:
		p.AfterImages = images
	}
}

// Measurement is a geometric annotation on one image of a project.
// It is scoped by (Kind, ImageIndex), never by global position.
type Measurement struct {
	Kind       ImageKind `json:"imageType"`
	ImageIndex int       `json:"imageIndex"`
	StartX     float64   `json:"startX"`
	StartY     float64   `json:"startY"`
	EndX       float64   `json:"endX"`
	EndY       float64   `json:"endY"`
	Scale      float64   `json:"scale,omitempty"`  // Physical units per pixel; 0 when uncalibrated
	Unit       string    `json:"unit,omitempty"`   // e.g. "mm", empty when uncalibrated
	Length     float64   `json:"length,omitempty"` // Computed physical length; 0 when uncalibrated
	Label      string    `json:"label,omitempty"`
}

// Folder is a named grouping for projects. Projects reference folders by id
// and are never owned by them.
type Folder struct {
	Id        ID        `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
