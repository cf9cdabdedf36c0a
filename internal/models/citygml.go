package models

import (
	"encoding/json"
	"time"
)

// FeatureTypes lists the feature type symbols the CityGML catalog groups files by.
var FeatureTypes = map[string]string{
	"bldg": "建築物",
	"tran": "道路",
	"brid": "橋梁",
	"urf":  "都市計画決定情報",
	"luse": "土地利用",
	"fld":  "洪水浸水想定区域",
	"tnm":  "津波浸水想定",
	"lsld": "土砂災害警戒区域",
	"htd":  "高潮浸水想定区域",
	"ifld": "内水浸水想定区域",
	"frn":  "都市設備",
	"veg":  "植生",
	"dem":  "地形（起伏）",
}

// IsFeatureType reports whether s is a known feature type symbol.
func IsFeatureType(s string) bool {
	_, ok := FeatureTypes[s]
	return ok
}

// CatalogResponse is the body returned by the CityGML data catalog.
type CatalogResponse struct {
	Cities []City `json:"cities"`
}

// City groups the CityGML files a municipality publishes, keyed by feature type.
type City struct {
	CityCode string                   `json:"cityCode,omitempty"`
	CityName string                   `json:"cityName,omitempty"`
	Year     int                      `json:"year,omitempty"`
	Files    map[string][]CityGMLFile `json:"files"`
}

// CityGMLFile is a single downloadable CityGML file.
type CityGMLFile struct {
	Code   string `json:"code,omitempty"`
	MaxLOD int    `json:"maxLod,omitempty"`
	URL    string `json:"url"`
}

// CatalogURLs is the filtered result of a catalog lookup. URLs lists every
// matching file once; ByType groups them per requested feature type.
type CatalogURLs struct {
	Conditions   []string            `json:"conditions"`
	FeatureTypes []string            `json:"feature_types"`
	URLs         []string            `json:"urls"`
	ByType       map[string][]string `json:"urls_by_type"`
}

// PackState is the lifecycle of a pack job on the remote side.
type PackState string

const (
	PackAccepted   PackState = "accepted"
	PackProcessing PackState = "processing"
	PackSucceeded  PackState = "succeeded"
	PackFailed     PackState = "failed"
)

// Terminal reports whether no further transition is possible.
func (s PackState) Terminal() bool {
	return s == PackSucceeded || s == PackFailed
}

// Valid reports whether s is one of the known states.
func (s PackState) Valid() bool {
	switch s {
	case PackAccepted, PackProcessing, PackSucceeded, PackFailed:
		return true
	}
	return false
}

// CanTransition reports whether a job in state s may move to next.
// Staying in the same state is always allowed.
func (s PackState) CanTransition(next PackState) bool {
	if s == next {
		return true
	}
	switch s {
	case PackAccepted:
		return next == PackProcessing || next.Terminal()
	case PackProcessing:
		return next.Terminal()
	}
	return false
}

// PackRequest is the body sent to the pack endpoint.
type PackRequest struct {
	URLs []string `json:"urls" binding:"required,min=1"`
}

// PackResponse is returned when a pack job is accepted.
type PackResponse struct {
	ID string `json:"id"`
}

// PackStatus is the progress of a pack job.
type PackStatus struct {
	ID      string          `json:"id"`
	Status  PackState       `json:"status"`
	Details json.RawMessage `json:"details,omitempty"`
}

// PackedDownload locates the archive of a succeeded pack job.
type PackedDownload struct {
	DownloadURL string `json:"download_url"`
	Status      string `json:"status"`
	ContentType string `json:"content_type"`
}

// PackJob is a pack request recorded by the gateway.
type PackJob struct {
	ID          string    `json:"id"`
	URLs        []string  `json:"urls"`
	Status      PackState `json:"status"`
	DownloadURL string    `json:"download_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DownloadRequest asks the gateway to fetch a packed archive.
type DownloadRequest struct {
	DownloadURL  string   `json:"download_url" binding:"required"`
	// SaveDir is relative to the gateway download directory.
	SaveDir      string   `json:"save_dir"`
	MeshCode     string   `json:"mesh_code"`
	FeatureTypes []string `json:"feature_types"`
	AutoExtract  *bool    `json:"auto_extract"`
}

// Extract reports whether the archive should be unpacked after download.
// Unset means yes.
func (r DownloadRequest) Extract() bool {
	return r.AutoExtract == nil || *r.AutoExtract
}

// DownloadResult describes a downloaded archive.
type DownloadResult struct {
	ZipPath       string         `json:"zip_path"`
	Bytes         int64          `json:"bytes"`
	Success       bool           `json:"success"`
	ExtractResult *ExtractResult `json:"extract_result,omitempty"`
}

// ExtractResult describes GML files unpacked from an archive.
type ExtractResult struct {
	ExtractDir  string   `json:"extract_dir"`
	GMLFiles    []string `json:"gml_files"`
	TotalFiles  int      `json:"total_files"`
	ZipFilename string   `json:"zip_filename"`
	Success     bool     `json:"success"`
}

// QGISCommandRequest asks for a QGIS console command displaying a CityGML file.
type QGISCommandRequest struct {
	CityGMLPath   string `json:"citygml_path" binding:"required"`
	LODPreference int    `json:"lod_preference"`
	SemanticParts bool   `json:"semantic_parts"`
}

// QGISCommand is the generated command and its readiness.
type QGISCommand struct {
	Command *string `json:"command"`
	Status  string  `json:"status"`
	Message string  `json:"message"`
}
