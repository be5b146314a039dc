package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageforge/internal/ingest"
	"github.com/pageforge/internal/service"
)

// Generate runs one bulk generation batch from a multipart upload: a CSV
// file under "file" plus the template definition as JSON under "template".
// The upload is kept on disk under the configured upload directory for
// traceability before being parsed.
func (a *API) Generate(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "missing csv upload")
		return
	}

	templateJSON := strings.TrimSpace(c.PostForm("template"))
	if templateJSON == "" {
		respondError(c, http.StatusBadRequest, "missing template definition")
		return
	}

	var tpl service.Template
	if err := json.Unmarshal([]byte(templateJSON), &tpl); err != nil {
		respondError(c, http.StatusBadRequest, "template definition is not valid JSON")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create upload directory")
		return
	}

	storedName := fmt.Sprintf("%s-%s%s",
		time.Now().Format("20060102"), uuid.New().String(), filepath.Ext(file.Filename))
	storedPath := filepath.Join(a.uploadDir, storedName)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to store upload")
		return
	}

	reader, err := os.Open(storedPath)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to read stored upload")
		return
	}
	defer reader.Close()

	dataset, err := ingest.Parse(reader)
	if err != nil {
		var parseErr *ingest.ParseError
		switch {
		case errors.As(err, &parseErr),
			errors.Is(err, ingest.ErrMissingHeader),
			errors.Is(err, ingest.ErrEmptyDataset):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to parse upload")
		}
		return
	}

	summary, err := a.generator.Generate(tpl, dataset)
	if err != nil {
		var missingErr *service.MissingVariablesError
		switch {
		case errors.As(err, &missingErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "template variables not satisfied by dataset",
				"missing": missingErr.Missing,
			})
		case errors.Is(err, service.ErrTemplateIncomplete):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNoRows):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "generation failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"report":  dataset.Report,
	})
}
