package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/dto"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/models"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/services"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/utils"
)

type ContactHandler struct {
	contacts *services.ContactService
	cal      *utils.Calendar
}

func NewContactHandler(contacts *services.ContactService, cal *utils.Calendar) *ContactHandler {
	return &ContactHandler{contacts: contacts, cal: cal}
}

// ListContacts returns contacts, soonest priority date first
func (h *ContactHandler) ListContacts(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	page, pagination := utils.Paginate(h.contacts.GetAllContacts(), params)

	c.JSON(http.StatusOK, gin.H{
		"contacts":   dto.ToContactDTOs(page, h.cal),
		"pagination": pagination,
	})
}

func (h *ContactHandler) GetContact(c *gin.Context) {
	contact, err := h.contacts.GetContact(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContactDTO(*contact, h.cal))
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	priorityDate, ok := parseDate(c, h.cal, "priority_date", req.PriorityDate)
	if !ok {
		return
	}

	contact, err := h.contacts.AddContact(c.Request.Context(), services.CreateContactInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Subject:      req.Subject,
		PriorityDate: priorityDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToContactDTO(*contact, h.cal))
}

func (h *ContactHandler) UpdateContact(c *gin.Context) {
	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	priorityDate, ok := parseOptionalDate(c, h.cal, "priority_date", req.PriorityDate)
	if !ok {
		return
	}

	contact, err := h.contacts.UpdateContact(c.Request.Context(), c.Param("id"), services.UpdateContactInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Subject:      req.Subject,
		PriorityDate: priorityDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContactDTO(*contact, h.cal))
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	if err := h.contacts.DeleteContact(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}

type NoteHandler struct {
	notes *services.NoteService
	cal   *utils.Calendar
}

func NewNoteHandler(notes *services.NoteService, cal *utils.Calendar) *NoteHandler {
	return &NoteHandler{notes: notes, cal: cal}
}

// ListNotes returns notes, soonest priority date first, optionally for one owner
func (h *NoteHandler) ListNotes(c *gin.Context) {
	owner := models.NoteOwner(c.Query("owner"))
	if owner != "" && !owner.Valid() {
		respondServiceError(c, services.ErrInvalidOwner)
		return
	}

	params := utils.GetPaginationParams(c)
	page, pagination := utils.Paginate(h.notes.GetNotesByOwner(owner), params)

	c.JSON(http.StatusOK, gin.H{
		"notes":      dto.ToNoteDTOs(page, h.cal),
		"pagination": pagination,
	})
}

func (h *NoteHandler) GetNote(c *gin.Context) {
	note, err := h.notes.GetNote(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note, h.cal))
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	priorityDate, ok := parseDate(c, h.cal, "priority_date", req.PriorityDate)
	if !ok {
		return
	}

	note, err := h.notes.AddNote(c.Request.Context(), services.CreateNoteInput{
		Subject:      req.Subject,
		PriorityDate: priorityDate,
		Owner:        models.NoteOwner(req.Owner),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToNoteDTO(*note, h.cal))
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	priorityDate, ok := parseOptionalDate(c, h.cal, "priority_date", req.PriorityDate)
	if !ok {
		return
	}

	input := services.UpdateNoteInput{
		Subject:      req.Subject,
		PriorityDate: priorityDate,
	}
	if req.Owner != nil {
		owner := models.NoteOwner(*req.Owner)
		input.Owner = &owner
	}

	note, err := h.notes.UpdateNote(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note, h.cal))
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	if err := h.notes.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}
