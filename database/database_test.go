package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn := NewConnection(ConnectionConfig{
		Dialector:    sqlite.Open(":memory:"),
		LogLevel:     logger.Silent,
		MaxOpenConns: 1,
	})
	db, err := conn.Open(context.Background())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	t.Cleanup(func() { _ = conn.Close() })
	return db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestConnection_OpenIsIdempotent(t *testing.T) {
	conn := NewConnection(ConnectionConfig{
		Dialector:    sqlite.Open(":memory:"),
		LogLevel:     logger.Silent,
		MaxOpenConns: 1,
	})
	t.Cleanup(func() { _ = conn.Close() })

	first, err := conn.Open(context.Background())
	require.NoError(t, err)
	second, err := conn.Open(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestConnection_EmptyDSNIsNotCached(t *testing.T) {
	conn := NewConnection(ConnectionConfig{})

	_, err := conn.Open(context.Background())
	require.Error(t, err)

	conn.cfg.Dialector = sqlite.Open(":memory:")
	conn.cfg.LogLevel = logger.Silent
	db, err := conn.Open(context.Background())
	require.NoError(t, err)
	require.NotNil(t, db)
	require.NoError(t, conn.Close())
}

func TestMigrate_IsRepeatable(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Migrate(db))
	for _, model := range models.All() {
		assert.True(t, db.Migrator().HasTable(model))
	}
}

func TestSkillRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewSkillRepo(newTestDB(t))

	skill := &models.Skill{Name: "Go", Category: models.SkillCategoryBackend, Icon: "https://x/icon.svg", Proficiency: 85}
	require.NoError(t, repo.Add(ctx, skill))
	require.NotEqual(t, uuid.Nil, skill.ID)
	require.False(t, skill.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, skill.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", found.Name)

	found.Proficiency = 90
	require.NoError(t, repo.Update(ctx, found))
	updated, err := repo.FindByID(ctx, skill.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, updated.Proficiency)

	require.NoError(t, repo.Delete(ctx, skill.ID))
	_, err = repo.FindByID(ctx, skill.ID)
	assert.True(t, IsNotFound(err))

	err = repo.Delete(ctx, skill.ID)
	assert.True(t, IsNotFound(err))
}

func TestSkillRepo_Ordering(t *testing.T) {
	ctx := context.Background()
	repo := NewSkillRepo(newTestDB(t))

	for _, s := range []*models.Skill{
		{Name: "Terraform", Category: models.SkillCategoryDevops, Icon: "https://x/tf.svg", Proficiency: 60},
		{Name: "React", Category: models.SkillCategoryFrontend, Icon: "https://x/react.svg", Proficiency: 80},
		{Name: "Go", Category: models.SkillCategoryBackend, Icon: "https://x/go.svg", Proficiency: 85},
	} {
		require.NoError(t, repo.Add(ctx, s))
		time.Sleep(2 * time.Millisecond)
	}

	byCategory, err := repo.FindAllByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, byCategory, 3)
	assert.Equal(t, models.SkillCategoryBackend, byCategory[0].Category)
	assert.Equal(t, models.SkillCategoryDevops, byCategory[1].Category)
	assert.Equal(t, models.SkillCategoryFrontend, byCategory[2].Category)

	newestFirst, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, newestFirst, 3)
	assert.Equal(t, "Go", newestFirst[0].Name)
	assert.Equal(t, "Terraform", newestFirst[2].Name)
}

func TestExperienceRepo_OrdersByStartDateDescending(t *testing.T) {
	ctx := context.Background()
	repo := NewExperienceRepo(newTestDB(t))

	end := date(2021, time.June, 30)
	for _, e := range []*models.Experience{
		{Title: "Engineer", Company: "Acme", Location: "Remote", StartDate: date(2019, time.March, 1), EndDate: &end,
			Description: datatypes.JSONSlice[string]{"APIs"}, Technologies: datatypes.JSONSlice[string]{"Go"}},
		{Title: "Senior Engineer", Company: "Globex", Location: "Berlin", StartDate: date(2021, time.July, 1), Current: true,
			Description: datatypes.JSONSlice[string]{"Platform"}, Technologies: datatypes.JSONSlice[string]{"Go", "Postgres"}},
	} {
		require.NoError(t, repo.Add(ctx, e))
	}

	experiences, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, experiences, 2)
	assert.Equal(t, "Globex", experiences[0].Company)
	assert.Equal(t, []string{"Go", "Postgres"}, []string(experiences[0].Technologies))
	assert.Nil(t, experiences[0].EndDate)
	require.NotNil(t, experiences[1].EndDate)
	assert.True(t, experiences[1].EndDate.Equal(end))
}

func TestProjectRepo_RoundTripsTechnologies(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepo(newTestDB(t))

	image := "https://cdn.test/p.png"
	project := &models.Project{
		Title:        "Portfolio",
		Description:  "This site",
		Image:        &image,
		Technologies: datatypes.JSONSlice[string]{"Go", "React"},
		GithubURL:    "https://github.com/me/portfolio",
		LiveURL:      "https://me.dev",
		Category:     "web",
	}
	require.NoError(t, repo.Add(ctx, project))

	projects, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, []string{"Go", "React"}, []string(projects[0].Technologies))
	require.NotNil(t, projects[0].Image)
	assert.Equal(t, image, *projects[0].Image)
}

func TestMessageRepo_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepo(newTestDB(t))

	message := &models.Message{Name: "Ada", Email: "ada@example.com", Message: "Hello"}
	require.NoError(t, repo.Add(ctx, message))
	assert.Equal(t, models.MessageStatusUnread, message.Status)

	updated, err := repo.UpdateStatus(ctx, message.ID, models.MessageStatusReplied)
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusReplied, updated.Status)

	_, err = repo.UpdateStatus(ctx, uuid.New(), models.MessageStatusRead)
	assert.True(t, IsNotFound(err))
}

func TestDatabase_PortfolioReader(t *testing.T) {
	ctx := context.Background()
	d := New(newTestDB(t))

	experiences, err := d.ListExperiences(ctx)
	require.NoError(t, err)
	assert.Empty(t, experiences)
	assert.NotNil(t, experiences)

	projects, err := d.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	skills, err := d.ListSkillsByCategory(ctx)
	require.NoError(t, err)
	assert.Empty(t, skills)
}
