package handlers

import (
	"fmt"
	"net/http"

	"eduplatform/internal/application/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CertificateHandler struct {
	certs *usecase.CertificateUseCase
}

func NewCertificateHandler(certs *usecase.CertificateUseCase) *CertificateHandler {
	return &CertificateHandler{certs: certs}
}

// POST /api/v1/certificates/generate/:courseId — отдаёт PDF
func (h *CertificateHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	cert, pdfBytes, err := h.certs.Generate(c, userID, courseID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="certificate-%s.pdf"`, cert.ID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/v1/certificates/:certificateId/pdf — повторный рендер из записи
func (h *CertificateHandler) GetPDF(c *gin.Context) {
	pdfBytes, cert, err := h.certs.GetPDF(c, c.Param("certificateId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="certificate-%s.pdf"`, cert.ID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/v1/certificates/validate/:certificateId — публичный,
// всегда 200: недействительность сертификата — это данные, а не ошибка
func (h *CertificateHandler) Validate(c *gin.Context) {
	result, err := h.certs.Validate(c, c.Param("certificateId"))
	if err != nil {
		writeError(c, err)
		return
	}

	if !result.Valid {
		c.JSON(http.StatusOK, gin.H{"valid": false, "message": result.Message})
		return
	}

	cert := result.Certificate
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"certificate": gin.H{
			"certificateId":  cert.ID,
			"fullName":       cert.FullName,
			"nationalId":     cert.NationalID,
			"courseName":     cert.CourseName,
			"kind":           cert.Kind,
			"completionDate": cert.CompletionDate,
			"issuanceDate":   cert.IssuanceDate,
		},
	})
}
