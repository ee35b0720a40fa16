package seed

import (
	"fmt"
	"strings"
	"time"

	"verdant/internal/models"
	"verdant/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is shared by every generated account so seeded logins
// are usable from the frontend during development.
const DemoPassword = "changeme123"

var departments = []string{
	"Facilities",
	"Energy",
	"Grounds",
	"Transportation",
	"Waste & Recycling",
}

var postTopics = []string{
	"Solar", "Composting", "Water Reuse", "Native Planting",
	"Bike Infrastructure", "Retrofit", "Heat Pumps",
}

// Factory builds realistic demo records. Override funcs mutate the
// record before it is saved, in the manner of CreateUser(func(u ...)).
type Factory struct {
	db       *gorm.DB
	demoHash string
}

func NewFactory(db *gorm.DB) *Factory {
	// MinCost keeps large seeds fast. Demo data never ships to production.
	hash, _ := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	return &Factory{db: db, demoHash: string(hash)}
}

func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	user := &models.User{
		FullName: first + " " + last,
		Email: strings.ToLower(fmt.Sprintf("%s.%s%d@example.com",
			first, last, gofakeit.Number(1, 9999))),
		Password: f.demoHash,
		Role:     models.RoleUser,
		Approved: true,
		Active:   true,
		Avatar:   gofakeit.ImageURL(200, 200),
	}
	for _, o := range overrides {
		o(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (f *Factory) CreatePost(author *models.User, published bool, overrides ...func(*models.BlogPost)) (*models.BlogPost, error) {
	topic := gofakeit.RandomString(postTopics)
	title := fmt.Sprintf("%s %s: %s",
		gofakeit.AdjectiveDescriptive(), topic, gofakeit.Sentence(4))

	post := &models.BlogPost{
		Title:      title,
		Slug:       uniqueSlug(title),
		Excerpt:    gofakeit.Sentence(12),
		Content:    gofakeit.Paragraph(4, 5, 12, "\n\n"),
		Tags:       strings.ToLower(topic) + ",campus",
		CoverImage: gofakeit.ImageURL(1200, 630),
		Status:     models.PostStatusDraft,
		AuthorID:   author.ID,
	}
	if published {
		post.Status = models.PostStatusPublished
		t := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now())
		post.PublishedAt = &t
		post.ViewCount = int64(gofakeit.Number(0, 2500))
	}
	for _, o := range overrides {
		o(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment attaches a comment to post, pending or approved at
// random, and occasionally an approved reply under it.
func (f *Factory) CreateComment(post *models.BlogPost, author *models.User, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:     post.ID,
		AuthorID:   author.ID,
		Content:    gofakeit.Sentence(gofakeit.Number(6, 20)),
		IsApproved: gofakeit.Number(0, 3) != 0,
	}
	for _, o := range overrides {
		o(comment)
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}

	if comment.IsApproved && gofakeit.Bool() {
		reply := &models.Comment{
			PostID:     post.ID,
			ParentID:   &comment.ID,
			AuthorID:   post.AuthorID,
			Content:    gofakeit.Sentence(gofakeit.Number(4, 12)),
			IsApproved: true,
		}
		if err := f.db.Create(reply).Error; err != nil {
			return nil, err
		}
	}
	return comment, nil
}

func (f *Factory) CreateProject(author *models.User, published bool, overrides ...func(*models.Project)) (*models.Project, error) {
	title := fmt.Sprintf("%s %s %s",
		gofakeit.City(), gofakeit.RandomString(postTopics), "Initiative")

	project := &models.Project{
		Title:          title,
		Slug:           uniqueSlug(title),
		Summary:        gofakeit.Sentence(14),
		Content:        gofakeit.Paragraph(3, 4, 10, "\n\n"),
		Department:     gofakeit.RandomString(departments),
		Status:         models.PostStatusDraft,
		Budget:         gofakeit.Price(5_000, 500_000),
		CO2SavedTons:   gofakeit.Float64Range(1, 800),
		EnergySavedMWh: gofakeit.Float64Range(0, 1200),
		TreesPlanted:   int64(gofakeit.Number(0, 3000)),
		AuthorID:       author.ID,
	}
	if published {
		project.Status = models.PostStatusPublished
	}

	for i := 0; i < gofakeit.Number(1, 4); i++ {
		project.Images = append(project.Images, models.ProjectImage{
			URL:       gofakeit.ImageURL(1600, 900),
			Caption:   gofakeit.Sentence(5),
			IsPrimary: i == 0,
		})
	}
	if gofakeit.Bool() {
		project.Documents = append(project.Documents, models.ProjectDocument{
			Name: gofakeit.AppName() + " report.pdf",
			URL:  gofakeit.URL(),
			Size: int64(gofakeit.Number(10_000, 4_000_000)),
		})
	}

	for _, o := range overrides {
		o(project)
	}
	if err := f.db.Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// uniqueSlug appends a short random suffix so repeated seeding never
// trips the slug unique index.
func uniqueSlug(title string) string {
	return validation.Slugify(title) + "-" + gofakeit.DigitN(4)
}
