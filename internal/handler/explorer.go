// Package handler provides HTTP handlers for the explorer REST API.
package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thatbeautifuldream/local-first-explorer/internal/config"
	"github.com/thatbeautifuldream/local-first-explorer/internal/explorer"
	"github.com/thatbeautifuldream/local-first-explorer/internal/format"
	lfs "github.com/thatbeautifuldream/local-first-explorer/internal/fs"
)

// advisory is the fixed message shown when directory access is unavailable.
const advisory = "Local directory access is not available in this environment."

// Metadata is the metadata panel payload for one entry.
type Metadata struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	SizeLabel    string    `json:"sizeLabel"`
	ContentType  string    `json:"contentType"`
	ModTime      time.Time `json:"modTime"`
	ModTimeLabel string    `json:"modTimeLabel"`
}

// ExplorerHandler handles import, tree, metadata, and selection requests.
type ExplorerHandler struct {
	cfg     *config.Config
	store   *explorer.Store
	imports []func(*lfs.Directory)
}

// NewExplorerHandler creates a new explorer handler
func NewExplorerHandler(cfg *config.Config, store *explorer.Store) *ExplorerHandler {
	return &ExplorerHandler{cfg: cfg, store: store}
}

// OnImport registers a callback invoked after each successful import.
func (h *ExplorerHandler) OnImport(fn func(*lfs.Directory)) {
	h.imports = append(h.imports, fn)
}

// GetCapability reports whether local directory access is available
func (h *ExplorerHandler) GetCapability(c *gin.Context) {
	supported := lfs.Supported()
	resp := gin.H{"supported": supported}
	if !supported {
		resp["advisory"] = advisory
	}
	c.JSON(http.StatusOK, resp)
}

// ImportRequest represents a request to import a directory
type ImportRequest struct {
	Path string `json:"path" binding:"required"`
}

// ImportFolder enumerates the given directory and replaces the explorer
// state with its entries
func (h *ExplorerHandler) ImportFolder(c *gin.Context) {
	if !lfs.Supported() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": advisory,
		})
		return
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "path is required",
		})
		return
	}

	dir, err := lfs.Open(req.Path, h.cfg.IsExcluded)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	entries, err := dir.Scan()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to scan directory: " + err.Error(),
		})
		return
	}

	state := h.store.Dispatch(explorer.Event{
		Type:    explorer.EventImported,
		Entries: entries,
		Path:    dir.Root(),
	})

	for _, fn := range h.imports {
		fn(dir)
	}

	c.JSON(http.StatusOK, gin.H{
		"root": dir.Root(),
		"tree": state.Tree,
	})
}

// GetTree returns the current directory tree, or a null tree when nothing
// has been imported yet
func (h *ExplorerHandler) GetTree(c *gin.Context) {
	state := h.store.State()
	c.JSON(http.StatusOK, gin.H{
		"root":    state.Root,
		"tree":    state.Tree,
		"loading": state.Loading,
	})
}

// GetMetadata returns formatted metadata for a single entry
func (h *ExplorerHandler) GetMetadata(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	// Security: prevent path traversal
	if strings.Contains(path, "..") {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "invalid path",
		})
		return
	}

	state := h.store.State()
	handle, ok := state.Entries[path]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "entry not found",
		})
		return
	}

	c.JSON(http.StatusOK, metadataFor(path, handle))
}

// SelectRequest represents a request to select an entry
type SelectRequest struct {
	Path string `json:"path" binding:"required"`
}

// SelectEntry updates the current selection. Selecting a path missing
// from the mapping is a no-op and the previous selection persists.
func (h *ExplorerHandler) SelectEntry(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "path is required",
		})
		return
	}

	state := h.store.Dispatch(explorer.Event{
		Type: explorer.EventSelected,
		Path: req.Path,
	})

	c.JSON(http.StatusOK, gin.H{
		"selected": state.Selected,
	})
}

// GetSelection returns metadata for the current selection, or a null
// selection when nothing is selected or the selection has gone stale
func (h *ExplorerHandler) GetSelection(c *gin.Context) {
	state := h.store.State()
	handle := state.Selection()
	if handle == nil {
		c.JSON(http.StatusOK, gin.H{"selected": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selected": state.Selected,
		"metadata": metadataFor(state.Selected, handle),
	})
}

func metadataFor(path string, handle lfs.Handle) Metadata {
	ctype := handle.ContentType()
	if ctype == "" {
		ctype = "unknown"
	}
	return Metadata{
		Name:         handle.Name(),
		Path:         path,
		Size:         handle.Size(),
		SizeLabel:    format.ByteSize(handle.Size()),
		ContentType:  ctype,
		ModTime:      handle.ModTime(),
		ModTimeLabel: format.Timestamp(handle.ModTime()),
	}
}
