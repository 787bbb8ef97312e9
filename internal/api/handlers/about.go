package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/services"
	"github.com/sednex/community-backend/internal/utils"
)

const invalidFaqID = "Invalid FAQ id"

type AboutHandler struct {
	aboutService *services.AboutService
}

func NewAboutHandler(aboutService *services.AboutService) *AboutHandler {
	return &AboutHandler{aboutService: aboutService}
}

func (h *AboutHandler) CreateTerms(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to create terms")
		return
	}
	terms, err := h.aboutService.CreateTerms(c.Request.Context(), fields)
	if err != nil {
		utils.SendAppError(c, err, "Failed to create terms")
		return
	}
	utils.SendSuccess(c, http.StatusCreated, "Terms created successfully", gin.H{"terms": services.NewTermsView(terms)})
}

func (h *AboutHandler) UpdateTerms(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update terms")
		return
	}
	terms, err := h.aboutService.UpdateTerms(c.Request.Context(), fields)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update terms")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Terms updated successfully", gin.H{"terms": services.NewTermsView(terms)})
}

func (h *AboutHandler) GetTerms(c *gin.Context) {
	terms, err := h.aboutService.GetTerms(c.Request.Context())
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch terms")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{"terms": services.NewTermsView(terms)})
}

func (h *AboutHandler) DeleteTerms(c *gin.Context) {
	if err := h.aboutService.DeleteTerms(c.Request.Context()); err != nil {
		utils.SendAppError(c, err, "Failed to delete terms")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Terms deleted successfully", nil)
}

func (h *AboutHandler) CreateContact(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to create contact information")
		return
	}
	contact, err := h.aboutService.CreateContact(c.Request.Context(), fields)
	if err != nil {
		utils.SendAppError(c, err, "Failed to create contact information")
		return
	}
	utils.SendSuccess(c, http.StatusCreated, "Contact information created successfully", gin.H{"contact": services.NewContactView(contact)})
}

func (h *AboutHandler) UpdateContact(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update contact information")
		return
	}
	contact, err := h.aboutService.UpdateContact(c.Request.Context(), fields)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update contact information")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Contact information updated successfully", gin.H{"contact": services.NewContactView(contact)})
}

func (h *AboutHandler) GetContact(c *gin.Context) {
	contact, err := h.aboutService.GetContact(c.Request.Context())
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch contact information")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{"contact": services.NewContactView(contact)})
}

func (h *AboutHandler) DeleteContact(c *gin.Context) {
	if err := h.aboutService.DeleteContact(c.Request.Context()); err != nil {
		utils.SendAppError(c, err, "Failed to delete contact information")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Contact information deleted successfully", nil)
}

func (h *AboutHandler) CreateFaq(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to create FAQ")
		return
	}
	faq, err := h.aboutService.CreateFaq(c.Request.Context(), fields)
	if err != nil {
		utils.SendAppError(c, err, "Failed to create FAQ")
		return
	}
	utils.SendSuccess(c, http.StatusCreated, "FAQ created successfully", gin.H{"faq": services.NewFaqView(faq)})
}

func (h *AboutHandler) UpdateFaq(c *gin.Context) {
	id, err := pathID(c, "faqId", invalidFaqID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update FAQ")
		return
	}
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update FAQ")
		return
	}
	faq, err := h.aboutService.UpdateFaq(c.Request.Context(), id, fields)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update FAQ")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "FAQ updated successfully", gin.H{"faq": services.NewFaqView(faq)})
}

func (h *AboutHandler) ListFaqs(c *gin.Context) {
	faqs, err := h.aboutService.ListFaqs(c.Request.Context())
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch FAQs")
		return
	}
	views := make([]services.FaqView, 0, len(faqs))
	for i := range faqs {
		views = append(views, services.NewFaqView(&faqs[i]))
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{
		"total": len(views),
		"faqs":  views,
	})
}

func (h *AboutHandler) DeleteFaq(c *gin.Context) {
	id, err := pathID(c, "faqId", invalidFaqID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to delete FAQ")
		return
	}
	if err := h.aboutService.DeleteFaq(c.Request.Context(), id); err != nil {
		utils.SendAppError(c, err, "Failed to delete FAQ")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "FAQ deleted successfully", nil)
}
