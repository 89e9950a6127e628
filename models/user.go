package models

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	KycNone     = "NONE"
	KycPending  = "PENDING"
	KycApproved = "APPROVED"
	KycRejected = "REJECTED"
)

type User struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	Role          string    `json:"role" db:"role"`
	EmailVerified bool      `json:"emailVerified" db:"email_verified"`
	KycStatus     string    `json:"kycStatus" db:"kyc_status"`
	KycDocType    string    `json:"kycDocumentType,omitempty" db:"kyc_doc_type"`
	KycDocNumber  string    `json:"kycDocumentNumber,omitempty" db:"kyc_doc_number"`
	KycDocument   string    `json:"kycDocument,omitempty" db:"kyc_document"`
	WalletAddress string    `json:"walletAddress" db:"wallet_address"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required,min=2,max=64"`
	Email    string `json:"email" binding:"required,email,max=128"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyOTPInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

type ResendOTPInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ProfileInput struct {
	Name          string `json:"name" binding:"required,min=2,max=64"`
	WalletAddress string `json:"walletAddress" binding:"omitempty,max=128"`
}

type PasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}

type KycInput struct {
	DocumentType   string `form:"documentType" binding:"required,oneof=PASSPORT ID_CARD DRIVER_LICENSE"`
	DocumentNumber string `form:"documentNumber" binding:"required,min=4,max=64"`
}

type KycStatusInput struct {
	Status string `json:"status" binding:"required,oneof=NONE PENDING APPROVED REJECTED"`
}
