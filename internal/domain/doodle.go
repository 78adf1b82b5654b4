package domain

import "time"

// DoodleCacheRecord is the single cached doodle shared with the widget
// process. The image is always already normalized to the display size budget
// before the record is written; readers never rescale.
type DoodleCacheRecord struct {
	ImageData   []byte    `json:"imageData"`
	PartnerName string    `json:"partnerName"`
	Timestamp   time.Time `json:"timestamp"`
}

// RemoteDoodle is one record from the backend's get_doodles RPC,
// newest first. Exactly one of Content / StoragePath is expected to be set.
type RemoteDoodle struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	SenderName  string    `json:"sender_name"`
	StoragePath string    `json:"storage_path"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// ImageSourceKind tags the three ways a remote record can carry its image.
type ImageSourceKind int

const (
	ImageSourceMissing ImageSourceKind = iota
	ImageSourceInline
	ImageSourceStorage
)

// ImageSource is the tagged choice between inline base64 content, a storage
// path, and neither. Modelling "neither" explicitly keeps it a named branch
// instead of an implicit fallthrough.
type ImageSource struct {
	Kind    ImageSourceKind
	Content string // base64, possibly with a data-URL prefix
	Path    string // storage object path
}

// ImageSource resolves the record's fields into a tagged source. Inline
// content wins when both fields are populated.
func (d RemoteDoodle) ImageSource() ImageSource {
	if d.Content != "" {
		return ImageSource{Kind: ImageSourceInline, Content: d.Content}
	}
	if d.StoragePath != "" {
		return ImageSource{Kind: ImageSourceStorage, Path: d.StoragePath}
	}
	return ImageSource{Kind: ImageSourceMissing}
}
