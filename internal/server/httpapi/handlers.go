package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anocare/anocare/internal/common"
	"github.com/anocare/anocare/internal/server/auth"
	"github.com/anocare/anocare/internal/server/models"
)

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrNotAuthorized), errors.Is(err, common.ErrInvalidToken):
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func (s *Server) handleSubmit(c *gin.Context) {
	var a models.Applicant
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	a.Address = c.Param("address")

	stored, err := s.apps.Submit(c.Request.Context(), &a)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "applicant": stored})
}

func (s *Server) handleListApplicants(c *gin.Context) {
	applicants, err := s.apps.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	// an empty list is a valid state, not a 404
	c.JSON(http.StatusOK, gin.H{"success": true, "applicants": applicants})
}

func (s *Server) handleListPending(c *gin.Context) {
	applicants, err := s.apps.ListPending(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "applicants": applicants})
}

func (s *Server) handleApprove(c *gin.Context) {
	address := c.Param("address")

	if err := s.review.Approve(c.Request.Context(), address); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Applicant approved successfully"})
}

func (s *Server) handleReject(c *gin.Context) {
	address := c.Param("address")

	if err := s.review.Reject(c.Request.Context(), address); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Applicant rejected successfully"})
}

func (s *Server) handleUserStatus(c *gin.Context) {
	status, err := s.apps.GetStatus(c.Request.Context(), c.Param("address"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "applicationStatus": status})
}

func (s *Server) handleToggleActive(c *gin.Context) {
	a, err := s.apps.ToggleActive(c.Request.Context(), c.Param("address"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": a})
}

func (s *Server) handleNonce(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "address is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "nonce": s.nonces.Issue(address)})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Address   string `json:"address"`
		Nonce     string `json:"nonce"`
		Signature string `json:"signature"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Address == "" || req.Nonce == "" || req.Signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "address, nonce and signature are required"})
		return
	}

	if !s.nonces.Consume(req.Address, req.Nonce) {
		writeError(c, common.ErrNotAuthorized)
		return
	}

	if err := auth.VerifyPersonalSignature(req.Address, auth.LoginMessage(req.Nonce), req.Signature); err != nil {
		writeError(c, err)
		return
	}

	isAdmin, err := s.registry.IsAdmin(c.Request.Context(), req.Address)
	if err != nil {
		writeError(c, err)
		return
	}
	if !isAdmin {
		writeError(c, common.ErrNotAuthorized)
		return
	}

	token, err := auth.GenerateToken(req.Address, s.jwtSecret, s.tokenTTL)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

func (s *Server) handleChat(c *gin.Context) {
	if s.chat == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "chat is not configured"})
		return
	}

	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "prompt is required"})
		return
	}

	reply, err := s.chat.Complete(c.Request.Context(), req.Prompt)
	if err != nil {
		s.log.Error(c.Request.Context(), "chat completion failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "completion failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "response": reply})
}
