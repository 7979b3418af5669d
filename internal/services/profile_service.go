package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/emploirapide/api/internal/models"
	pgrepo "github.com/emploirapide/api/internal/repositories/postgres"
	"github.com/emploirapide/api/internal/storage"
	"github.com/emploirapide/api/internal/utils"
)

// ProfilePatch carries only the fields the caller wants to change. Nil
// pointers are left untouched.
type ProfilePatch struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	About        *string `json:"about"`
	ProfilePhoto *string `json:"profilePhoto"`

	CompanyName *string `json:"companyName"`
	Website     *string `json:"website"`

	Experiences *json.RawMessage `json:"experiences"`
	Education   *json.RawMessage `json:"education"`
	Skills      *json.RawMessage `json:"skills"`
	Languages   *json.RawMessage `json:"languages"`
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (map[string]any, error)
	Update(ctx context.Context, userID string, patch ProfilePatch) (map[string]any, error)
}

type profileService struct {
	users pgrepo.UserRepository
	store storage.Uploader
}

func NewProfileService(users pgrepo.UserRepository, store storage.Uploader) ProfileService {
	return &profileService{users: users, store: store}
}

func (s *profileService) Get(ctx context.Context, userID string) (map[string]any, error) {
	const op = "ProfileService.Get"

	u, err := s.loadUser(ctx, op, userID)
	if err != nil {
		return nil, err
	}
	return profileView(u), nil
}

func (s *profileService) Update(ctx context.Context, userID string, patch ProfilePatch) (map[string]any, error) {
	const op = "ProfileService.Update"

	u, err := s.loadUser(ctx, op, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	setString := func(col string, v *string) {
		if v != nil {
			fields[col] = *v
		}
	}
	setString("name", patch.Name)
	setString("phone", patch.Phone)
	setString("address", patch.Address)
	setString("city", patch.City)
	setString("about", patch.About)

	if u.Role == models.RoleRecruiter {
		setString("company_name", patch.CompanyName)
		setString("website", patch.Website)
	}
	if u.Role == models.RoleCandidate {
		setJSON := func(col string, v *json.RawMessage) error {
			if v == nil {
				return nil
			}
			if !json.Valid(*v) {
				return utils.E(utils.CodeInvalidArgument, op, col+" must be valid JSON", nil)
			}
			fields[col] = datatypes.JSON(*v)
			return nil
		}
		for col, v := range map[string]*json.RawMessage{
			"experiences": patch.Experiences,
			"education":   patch.Education,
			"skills":      patch.Skills,
			"languages":   patch.Languages,
		} {
			if err := setJSON(col, v); err != nil {
				return nil, err
			}
		}
	}

	// The photo is uploaded first so a storage failure leaves the profile
	// row untouched.
	if patch.ProfilePhoto != nil {
		url, err := s.storePhoto(ctx, op, userID, *patch.ProfilePhoto)
		if err != nil {
			return nil, err
		}
		fields["profile_photo"] = url
	}

	if err := s.users.Update(ctx, userID, fields); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update profile", err)
	}

	u, err = s.loadUser(ctx, op, userID)
	if err != nil {
		return nil, err
	}
	return profileView(u), nil
}

// storePhoto accepts either an inline data URI, which gets decoded and
// uploaded, or an already-hosted URL, which is kept as-is.
func (s *profileService) storePhoto(ctx context.Context, op, userID, value string) (string, error) {
	if !strings.HasPrefix(value, "data:") {
		return value, nil
	}

	contentType, data, err := utils.ParseDataURI(value)
	if err != nil {
		return "", utils.E(utils.CodeInvalidArgument, op, "invalid profile photo payload", err)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", utils.E(utils.CodeInvalidArgument, op, "profile photo must be an image", nil)
	}

	ext := strings.TrimPrefix(contentType, "image/")
	objectName := fmt.Sprintf("profiles/%s/%s.%s", userID, uuid.NewString(), ext)

	url, err := s.store.Upload(ctx, objectName, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", utils.E(utils.CodeUpstream, op, "failed to store profile photo", err)
	}
	return url, nil
}

func (s *profileService) loadUser(ctx context.Context, op, userID string) (*models.User, error) {
	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load profile", err)
	}
	return u, nil
}

// profileView shapes the stored row for the owner, decoding candidate
// sub-records and hiding fields that do not apply to the role.
func profileView(u *models.User) map[string]any {
	view := map[string]any{
		"id":           u.ID,
		"email":        u.Email,
		"name":         u.Name,
		"role":         u.Role,
		"phone":        u.Phone,
		"address":      u.Address,
		"city":         u.City,
		"about":        u.About,
		"profilePhoto": u.ProfilePhoto,
		"createdAt":    u.CreatedAt,
		"updatedAt":    u.UpdatedAt,
	}

	switch u.Role {
	case models.RoleRecruiter:
		view["companyName"] = u.CompanyName
		view["website"] = u.Website
	case models.RoleCandidate:
		view["experiences"] = decodeList(u.Experiences)
		view["education"] = decodeList(u.Education)
		view["skills"] = decodeList(u.Skills)
		view["languages"] = decodeList(u.Languages)
	}
	return view
}

func decodeList(data datatypes.JSON) []any {
	if len(data) == 0 {
		return []any{}
	}
	var out []any
	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		return []any{}
	}
	return out
}
