// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"catalogweb/internal/models"
)

// notifyTimeout bounds a single lead notification.
const notifyTimeout = 30 * time.Second

// background runs fn outside the request goroutine. Tests replace it with
// a synchronous runner.
type background func(fn func())

func goBackground(fn func()) { go fn() }

// Leads groups the contact form and the admin handlers for contacts and
// catalog enquiries.
type Leads struct {
	contacts  ContactRepo
	enquiries EnquiryRepo
	notifier  Notifier
	captcha   string
	async     background
}

// NewLeads creates the leads handler group. notifier may be nil when
// email notifications are disabled.
func NewLeads(contacts ContactRepo, enquiries EnquiryRepo, notifier Notifier, captcha string) *Leads {
	return &Leads{
		contacts:  contacts,
		enquiries: enquiries,
		notifier:  notifier,
		captcha:   captcha,
		async:     goBackground,
	}
}

type contactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Captcha string `json:"captcha"`
}

// captchaMatches compares the submitted value with the configured one in
// constant time.
func captchaMatches(want, got string) bool {
	got = strings.TrimSpace(got)
	return want != "" && subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// CreateContact stores a message from the public contact form and
// notifies the site owner.
func (h *Leads) CreateContact(w http.ResponseWriter, r *http.Request) {
	var in contactInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !captchaMatches(h.captcha, in.Captcha) {
		writeError(w, http.StatusBadRequest, "captcha does not match")
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	if msg := validateLead(in.Name, in.Email, in.Phone); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateContactMessage(in.Subject, in.Message); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.contacts.Create(r.Context(), &models.Contact{
		Name:    strings.TrimSpace(in.Name),
		Email:   in.Email,
		Phone:   strings.TrimSpace(in.Phone),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
		Status:  models.ContactStatusNew,
	})
	if err != nil {
		internalError(w, "create contact failed", err)
		return
	}
	slog.Info("contact received", "id", created.ID)

	if h.notifier != nil {
		ctx := context.WithoutCancel(r.Context())
		h.async(func() {
			ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
			defer cancel()
			if err := h.notifier.ContactReceived(ctx, created); err != nil {
				slog.Warn("contact notification failed", "error", err, "id", created.ID)
			}
		})
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListContacts returns contact messages, newest first.
func (h *Leads) ListContacts(w http.ResponseWriter, r *http.Request) {
	status := models.ContactStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}
	items, err := h.contacts.List(r.Context(), status)
	if err != nil {
		internalError(w, "list contacts failed", err)
		return
	}
	writeJSON(w, http.StatusOK, list(items))
}

// GetContact returns one contact message.
func (h *Leads) GetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	c, err := h.contacts.FindByID(r.Context(), id)
	if err != nil {
		internalError(w, "find contact failed", err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "contact not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type contactStatusInput struct {
	Status models.ContactStatus `json:"status"`
}

// UpdateContactStatus moves a contact message through its workflow.
func (h *Leads) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in contactStatusInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !in.Status.Valid() {
		writeError(w, http.StatusBadRequest, "status must be one of new, read, replied, archived")
		return
	}

	c, err := h.contacts.UpdateStatus(r.Context(), id, in.Status)
	if err != nil {
		internalError(w, "update contact status failed", err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "contact not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteContact removes a contact message.
func (h *Leads) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	c, err := h.contacts.FindByID(ctx, id)
	if err != nil {
		internalError(w, "find contact failed", err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "contact not found")
		return
	}
	if err := h.contacts.Delete(ctx, id); err != nil {
		internalError(w, "delete contact failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListEnquiries returns catalog download leads, newest first.
func (h *Leads) ListEnquiries(w http.ResponseWriter, r *http.Request) {
	status := models.EnquiryStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}
	items, err := h.enquiries.List(r.Context(), status)
	if err != nil {
		internalError(w, "list enquiries failed", err)
		return
	}
	writeJSON(w, http.StatusOK, list(items))
}

// GetEnquiry returns one catalog enquiry.
func (h *Leads) GetEnquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	e, err := h.enquiries.FindByID(r.Context(), id)
	if err != nil {
		internalError(w, "find enquiry failed", err)
		return
	}
	if e == nil {
		writeError(w, http.StatusNotFound, "enquiry not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

type enquiryStatusInput struct {
	Status models.EnquiryStatus `json:"status"`
}

// UpdateEnquiryStatus records follow-up on a catalog enquiry.
func (h *Leads) UpdateEnquiryStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in enquiryStatusInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !in.Status.Valid() {
		writeError(w, http.StatusBadRequest, "status must be one of new, contacted, closed")
		return
	}

	e, err := h.enquiries.UpdateStatus(r.Context(), id, in.Status)
	if err != nil {
		internalError(w, "update enquiry status failed", err)
		return
	}
	if e == nil {
		writeError(w, http.StatusNotFound, "enquiry not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// DeleteEnquiry removes a catalog enquiry.
func (h *Leads) DeleteEnquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	e, err := h.enquiries.FindByID(ctx, id)
	if err != nil {
		internalError(w, "find enquiry failed", err)
		return
	}
	if e == nil {
		writeError(w, http.StatusNotFound, "enquiry not found")
		return
	}
	if err := h.enquiries.Delete(ctx, id); err != nil {
		internalError(w, "delete enquiry failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
