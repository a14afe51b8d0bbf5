package services

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"community_justice_go/models"

	"gorm.io/gorm"
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// RegistrationInput carries the citizen registration form values
type RegistrationInput struct {
	FullName    string `json:"full_name" form:"full_name"`
	LastName    string `json:"last_name" form:"last_name"`
	IDNumber    string `json:"id_number" form:"id_number"`
	DateOfBirth string `json:"date_of_birth" form:"date_of_birth"` // YYYY-MM-DD
	Phone       string `json:"phone" form:"phone"`
	Address     string `json:"address" form:"address"`
	RoleRequest string `json:"role_request" form:"role_request"`

	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// RegisterUser validates the registration form and creates the account and
// its profile in one transaction. The profile starts unapproved; the
// requested role carries no authority until an administrator approves it.
func RegisterUser(db *gorm.DB, input *RegistrationInput) (*models.User, error) {
	fields := map[string]string{}

	if strings.TrimSpace(input.FullName) == "" {
		fields["full_name"] = "Los nombres son obligatorios."
	}
	if strings.TrimSpace(input.LastName) == "" {
		fields["last_name"] = "Los apellidos son obligatorios."
	}

	idNumber := strings.TrimSpace(input.IDNumber)
	if idNumber == "" {
		fields["id_number"] = "La cédula es obligatoria."
	} else if !isAllDigits(idNumber) {
		fields["id_number"] = "La cédula debe contener solo números."
	}

	var dateOfBirth time.Time
	if input.DateOfBirth == "" {
		fields["date_of_birth"] = "La fecha de nacimiento es obligatoria."
	} else {
		parsed, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			fields["date_of_birth"] = "Fecha de nacimiento no válida."
		} else {
			dateOfBirth = parsed
		}
	}

	if !models.IsValidRole(input.RoleRequest) {
		fields["role_request"] = "Rol a solicitar no válido."
	}

	if strings.TrimSpace(input.Username) == "" {
		fields["username"] = "El nombre de usuario es obligatorio."
	}
	if strings.TrimSpace(input.Email) == "" {
		fields["email"] = "El correo electrónico es obligatorio."
	}

	if len(input.Password) < MinPasswordLength {
		fields["password"] = fmt.Sprintf("La contraseña debe tener al menos %d caracteres.", MinPasswordLength)
	} else if input.Password != input.ConfirmPassword {
		fields["confirm_password"] = "Las contraseñas no coinciden."
	}

	// Duplicate checks produce field-level messages like the rest
	if _, taken := fields["id_number"]; !taken && idNumber != "" {
		var count int64
		db.Model(&models.UserProfile{}).Where("id_number = ?", idNumber).Count(&count)
		if count > 0 {
			fields["id_number"] = "Ya existe un usuario con esta cédula."
		}
	}
	if _, taken := fields["email"]; !taken && input.Email != "" {
		var count int64
		db.Model(&models.User{}).Where("email = ?", input.Email).Count(&count)
		if count > 0 {
			fields["email"] = "Ya existe un usuario con este correo electrónico."
		}
	}
	if _, taken := fields["username"]; !taken && input.Username != "" {
		var count int64
		db.Model(&models.User{}).Where("username = ?", input.Username).Count(&count)
		if count > 0 {
			fields["username"] = "Ya existe un usuario con este nombre de usuario."
		}
	}

	if len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.TrimSpace(input.Email),
		Password: hashedPassword,
		IsActive: true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		profile := &models.UserProfile{
			UserID:          user.ID,
			FullName:        strings.TrimSpace(input.FullName),
			LastName:        strings.TrimSpace(input.LastName),
			IDNumber:        idNumber,
			DateOfBirth:     dateOfBirth,
			Phone:           strings.TrimSpace(input.Phone),
			Address:         strings.TrimSpace(input.Address),
			RoleRequest:     input.RoleRequest,
			ApprovedByAdmin: false,
		}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create user profile: %w", err)
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ApproveUser marks a pending profile as approved and promotes the
// requested role to the authoritative one.
func ApproveUser(db *gorm.DB, profileID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := db.First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, err
	}

	profile.ApprovedByAdmin = true
	profile.Role = profile.RoleRequest
	if err := db.Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to approve user profile: %w", err)
	}

	return &profile, nil
}

// RejectUser deletes a pending profile and its account in one transaction
func RejectUser(db *gorm.DB, profileID string) error {
	var profile models.UserProfile
	if err := db.First(&profile, "id = ?", profileID).Error; err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&profile).Error; err != nil {
			return fmt.Errorf("failed to delete user profile: %w", err)
		}
		if err := tx.Delete(&models.User{}, "id = ?", profile.UserID).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

// PendingProfiles lists profiles awaiting administrator approval
func PendingProfiles(db *gorm.DB) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	err := db.Preload("User").
		Where("approved_by_admin = ?", false).
		Order("created_at ASC").
		Find(&profiles).Error
	return profiles, err
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
