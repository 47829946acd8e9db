package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contacthub/internal/middleware"
	"contacthub/internal/models"
	"contacthub/internal/service"
)

type shareResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type contactResponse struct {
	ID            string          `json:"_id"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	ContactNumber string          `json:"contactNumber"`
	EmailAddress  string          `json:"emailAddress"`
	Photo         string          `json:"photo,omitempty"`
	Owner         string          `json:"owner"`
	SharedWith    []shareResponse `json:"sharedWith"`
}

func (h HandlerSet) toContactResponse(contact models.Contact) contactResponse {
	resp := contactResponse{
		ID:            contact.ID,
		FirstName:     contact.FirstName,
		LastName:      contact.LastName,
		ContactNumber: contact.ContactNumber,
		EmailAddress:  contact.EmailAddress,
		Owner:         contact.OwnerID,
		SharedWith:    make([]shareResponse, 0, len(contact.SharedWith)),
	}
	if contact.PhotoBucket != nil && contact.PhotoKey != nil {
		resp.Photo = h.store.PublicURL(*contact.PhotoBucket, *contact.PhotoKey)
	}
	for _, share := range contact.SharedWith {
		resp.SharedWith = append(resp.SharedWith, shareResponse{
			UserID: share.UserID,
			Email:  share.Email,
		})
	}
	return resp
}

func (h HandlerSet) ListContacts(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	contacts, err := h.contactService.List(c.Request.Context(), user)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", user.ID).Msg("list contacts failed")
		respondError(c, err)
		return
	}

	resp := make([]contactResponse, 0, len(contacts))
	for _, contact := range contacts {
		resp = append(resp, h.toContactResponse(contact))
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) GetContact(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	contact, err := h.contactService.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toContactResponse(contact))
}

func (h HandlerSet) CreateContact(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	input := service.ContactInput{
		FirstName:     c.PostForm("firstName"),
		LastName:      c.PostForm("lastName"),
		ContactNumber: c.PostForm("contactNumber"),
		EmailAddress:  c.PostForm("emailAddress"),
	}

	if file, header, err := c.Request.FormFile("photo"); err == nil {
		defer file.Close()
		input.PhotoFile = file
		input.PhotoHeader = header
	}

	contact, err := h.contactService.Create(c.Request.Context(), user, input)
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", user.ID).Msg("create contact failed")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.toContactResponse(contact))
}

func (h HandlerSet) UpdateContact(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	// Partial update: only fields present in the form are touched.
	var input service.ContactUpdateInput
	if v, ok := c.GetPostForm("firstName"); ok {
		input.FirstName = &v
	}
	if v, ok := c.GetPostForm("lastName"); ok {
		input.LastName = &v
	}
	if v, ok := c.GetPostForm("contactNumber"); ok {
		input.ContactNumber = &v
	}
	if v, ok := c.GetPostForm("emailAddress"); ok {
		input.EmailAddress = &v
	}
	if file, header, err := c.Request.FormFile("photo"); err == nil {
		defer file.Close()
		input.PhotoFile = file
		input.PhotoHeader = header
	}

	contact, err := h.contactService.Update(c.Request.Context(), user, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toContactResponse(contact))
}

func (h HandlerSet) DeleteContact(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type shareRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h HandlerSet) ShareContact(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.contactService.Share(c.Request.Context(), user, c.Param("id"), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) UnshareContact(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.contactService.Unshare(c.Request.Context(), user, c.Param("id"), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
