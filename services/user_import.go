package services

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vnkhanh/social-blog-backend/models"
)

const (
	DefaultImportURL   = "https://jsonplaceholder.typicode.com/users"
	DefaultImportLimit = 10
	importedPassword   = "password"
)

type importedUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserImporter tạo user từ một API JSON trả về mảng {name, email}
type UserImporter struct {
	DB     *gorm.DB
	Client *http.Client
	Out    io.Writer
}

// Import trả về số user đã tạo. Status HTTP khác 2xx là lỗi, không retry.
func (im *UserImporter) Import(ctx context.Context, url string, limit int) (int, error) {
	client := im.Client
	if client == nil {
		client = http.DefaultClient
	}
	out := im.Out
	if out == nil {
		out = io.Discard
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("request failed: %d", resp.StatusCode)
	}

	var users []importedUser
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&users); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	if limit >= 0 && len(users) > limit {
		users = users[:limit]
	}

	// mọi user import dùng chung mật khẩu mặc định
	hashed, err := bcrypt.GenerateFromPassword([]byte(importedPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	created := 0
	db := im.DB.WithContext(ctx)
	for _, u := range users {
		if u.Email == "" {
			fmt.Fprintf(out, "Skipping user without email: %s\n", u.Name)
			continue
		}
		fmt.Fprintf(out, "Creating user: %s (%s)\n", u.Name, u.Email)

		user := models.User{Name: u.Name, Email: u.Email, Password: string(hashed)}
		result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user)
		if result.Error != nil {
			return created, fmt.Errorf("create user %s: %w", u.Email, result.Error)
		}
		if result.RowsAffected == 0 {
			fmt.Fprintf(out, "User already exists: %s (%s)\n", u.Name, u.Email)
			continue
		}
		created++
		fmt.Fprintf(out, "Finished creating user: %s (%s)\n", u.Name, u.Email)
	}
	return created, nil
}
