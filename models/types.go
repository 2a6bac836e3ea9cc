// ABOUTME: Data models for sales pipeline entities
// ABOUTME: Defines User, Client, Prospect, Sale, PhoneNumber, CallLog, and FollowUp structs
package models

import (
	"strconv"
	"time"
)

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
}

type Client struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Company  string `json:"company,omitempty"`
	Industry string `json:"industry,omitempty"`
}

type Prospect struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone,omitempty"`
	Email        string     `json:"email,omitempty"`
	Company      string     `json:"company,omitempty"`
	Status       string     `json:"status"`
	FollowUpDate *time.Time `json:"follow_up_date,omitempty"`
}

type Sale struct {
	ID               int64     `json:"id"`
	ClientID         int64     `json:"client_id"`
	Date             time.Time `json:"date"`
	Amount           float64   `json:"amount"`
	ProductOrService string    `json:"product_or_service"`
}

type PhoneNumber struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Number         string    `json:"number"`
	LastCalledDate time.Time `json:"last_called_date"`
	IsProspect     bool      `json:"is_prospect"`
	ProspectID     *int64    `json:"prospect_id,omitempty"`
}

type CallLog struct {
	ID               int64      `json:"id"`
	PhoneNumberID    int64      `json:"phone_number_id"`
	Date             time.Time  `json:"date"`
	Feedback         string     `json:"feedback"`
	Duration         int        `json:"duration"` // seconds
	ShortNotes       string     `json:"short_notes,omitempty"`
	NextFollowUpDate *time.Time `json:"next_follow_up_date,omitempty"`
}

// EntityType discriminates which table an EntityRef resolves against.
type EntityType string

const (
	EntityClient      EntityType = "client"
	EntityProspect    EntityType = "prospect"
	EntityPhoneNumber EntityType = "phoneNumber"
)

// EntityRef is a typed reference to the entity a follow-up is addressed to.
// Construct with ClientRef, ProspectRef, or PhoneNumberRef; resolution
// dispatches on the tag at read time.
type EntityRef struct {
	Type EntityType `json:"entity_type"`
	ID   int64      `json:"entity_id"`
}

func ClientRef(id int64) EntityRef      { return EntityRef{Type: EntityClient, ID: id} }
func ProspectRef(id int64) EntityRef    { return EntityRef{Type: EntityProspect, ID: id} }
func PhoneNumberRef(id int64) EntityRef { return EntityRef{Type: EntityPhoneNumber, ID: id} }

type FollowUp struct {
	ID          int64     `json:"id"`
	Entity      EntityRef `json:"entity"`
	Date        time.Time `json:"date"`
	Notes       string    `json:"notes,omitempty"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowUpDetail combines a FollowUp with the resolved referent for
// reminder views and the notification bridge.
type FollowUpDetail struct {
	FollowUp
	EntityName  string `json:"entity_name"`
	EntityPhone string `json:"entity_phone,omitempty"`
}

// NotificationKey is the stable identifier the notification bridge should
// use when scheduling or cancelling a reminder for this follow-up.
func (f *FollowUpDetail) NotificationKey() string {
	return "followup-" + strconv.FormatInt(f.ID, 10)
}

// ProspectStatus constants. Won is only ever written by conversion.
const (
	StatusNew       = "New"
	StatusContacted = "Contacted"
	StatusQualified = "Qualified"
	StatusWon       = "Won"
)

// CallFeedback constants.
const (
	FeedbackSuccessful    = "Successful"
	FeedbackBusy          = "Busy"
	FeedbackNotAnswered   = "Not Answered"
	FeedbackDNC           = "DNC"
	FeedbackConnectedLead = "Connected-Lead"
)

// DefaultIndustry is the industry placeholder written when a prospect is
// converted into a client without any industry information.
const DefaultIndustry = "General"

// CallInput carries the caller-supplied outcome data for a recorded call.
type CallInput struct {
	Date             time.Time  `json:"date"`
	Feedback         string     `json:"feedback"`
	Duration         int        `json:"duration"`
	ShortNotes       string     `json:"short_notes,omitempty"`
	NextFollowUpDate *time.Time `json:"next_follow_up_date,omitempty"`
}

// SaleInput carries the caller-supplied sale data for prospect conversion.
type SaleInput struct {
	Date             time.Time `json:"date"`
	Amount           float64   `json:"amount"`
	ProductOrService string    `json:"product_or_service"`
}
