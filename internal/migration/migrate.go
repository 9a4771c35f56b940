package migration

import (
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell-backend/internal/domain"
)

// Run applies the schema via GORM AutoMigrate. Additive only: it never drops
// columns, so it is safe to run on every boot.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Tag{},
		&domain.TagRequest{},
		&domain.TagRevision{},
		&domain.Post{},
		&domain.PostRevision{},
		&domain.PostTag{},
		&domain.PostLike{},
		&domain.Comment{},
		&domain.CommentRevision{},
	)
}
