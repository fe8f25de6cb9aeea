package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	documentRepo "telecare/database/repository/document"
	"telecare/middleware"
	"telecare/models"
	"telecare/services/intelligence"
	"telecare/services/storage"
	"telecare/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentHandler manages patient document uploads and AI summaries.
type DocumentHandler struct {
	Storage storage.StorageService
	AI      intelligence.AIService
	Repo    documentRepo.DocumentRepository
}

func NewDocumentHandler(storageSvc storage.StorageService, aiSvc intelligence.AIService, repo documentRepo.DocumentRepository) *DocumentHandler {
	return &DocumentHandler{Storage: storageSvc, AI: aiSvc, Repo: repo}
}

// UploadHandler stores a medical document for the authenticated patient.
func (h *DocumentHandler) UploadHandler(c *gin.Context) {
	patientID, ok := middleware.GetUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing file", err.Error())
		return
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to buffer upload", err.Error())
		return
	}
	defer os.Remove(tmpPath)

	res, err := h.Storage.UploadFile(c.Request.Context(), tmpPath, "medical-documents/"+patientID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to store document", err.Error())
		return
	}

	doc := &models.MedicalDocument{
		ID:         uuid.New().String(),
		PatientID:  patientID,
		FileName:   file.Filename,
		PublicID:   res.PublicID,
		URL:        res.URL,
		UploadedAt: time.Now().UTC(),
	}
	if err := h.Repo.Create(c.Request.Context(), doc); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save document record", err.Error())
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// ListHandler returns the authenticated patient's documents.
func (h *DocumentHandler) ListHandler(c *gin.Context) {
	patientID, _ := middleware.GetUserID(c)

	docs, err := h.Repo.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list documents", err.Error())
		return
	}
	if docs == nil {
		docs = []models.MedicalDocument{}
	}
	c.JSON(http.StatusOK, docs)
}

type analyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// AnalyzeHandler runs the AI summary over a document's extracted text and
// stores the result on the record.
func (h *DocumentHandler) AnalyzeHandler(c *gin.Context) {
	patientID, _ := middleware.GetUserID(c)
	id := c.Param("id")

	doc, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == documentRepo.ErrNotFound {
			utils.JSONError(c, http.StatusNotFound, "Document not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch document", err.Error())
		return
	}
	if doc.PatientID != patientID {
		utils.JSONError(c, http.StatusForbidden, "Not your document", "")
		return
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing document text", err.Error())
		return
	}

	summary, err := h.AI.SummarizeDocument(c.Request.Context(), req.Text)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "AI analysis failed", err.Error())
		return
	}
	if err := h.Repo.UpdateSummary(c.Request.Context(), id, summary); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save summary", err.Error())
		return
	}

	doc.Summary = summary
	c.JSON(http.StatusOK, doc)
}
