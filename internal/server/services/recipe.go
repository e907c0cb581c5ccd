package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/common"
	"github.com/dmitrijs2005/mealplanner/internal/dbx"
	sc "github.com/dmitrijs2005/mealplanner/internal/server/config"
	"github.com/dmitrijs2005/mealplanner/internal/server/models"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// RecipeService manages a user's recipes and their images in object storage.
type RecipeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewRecipeService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *RecipeService {
	return &RecipeService{db: db, repomanager: m, config: cfg}
}

func imageStorageKey(userID string) string {
	return fmt.Sprintf("recipes/%s/%v", userID, uuid.New())
}

// recipeID rejects ids that cannot name a stored recipe, so they are
// reported as missing rather than reaching the database.
func recipeID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", common.ErrorNotFound
	}
	return u.String(), nil
}

func validateIngredients(in []models.Ingredient) error {
	for i, ing := range in {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("%w: ingredient %d has no name", common.ErrValidation, i)
		}
		if ing.Amount < 0 || ing.Calories < 0 || ing.Fat < 0 || ing.Protein < 0 ||
			ing.Carbohydrates < 0 || ing.EstimatedCost < 0 {
			return fmt.Errorf("%w: ingredient %q has a negative value", common.ErrValidation, ing.Name)
		}
	}
	return nil
}

// Create stores draft with its ingredients for the user. Totals are derived
// from the ingredients.
func (s *RecipeService) Create(ctx context.Context, userID string, draft *models.Recipe) (*models.Recipe, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: recipe name is required", common.ErrValidation)
	}
	if draft.CookTime <= 0 {
		return nil, fmt.Errorf("%w: cook time must be positive", common.ErrValidation)
	}
	if err := validateIngredients(draft.Ingredients); err != nil {
		return nil, err
	}

	r := &models.Recipe{UserID: userID, Name: name, Description: draft.Description, CookTime: draft.CookTime}
	ingredients := draft.Ingredients
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}

	var created *models.Recipe
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Recipes(tx)
		var err error
		if created, err = repo.Create(ctx, r); err != nil {
			return err
		}
		return repo.AddIngredients(ctx, created.ID, ingredients)
	})
	if err != nil {
		return nil, err
	}

	created.SetIngredients(ingredients)
	return created, nil
}

func (s *RecipeService) Get(ctx context.Context, userID, id string) (*models.Recipe, error) {
	id, err := recipeID(id)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Recipes(s.db)
	r, err := repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	ingredients, err := repo.Ingredients(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	r.SetIngredients(ingredients)
	return r, nil
}

func (s *RecipeService) List(ctx context.Context, userID string) ([]*models.Recipe, error) {
	repo := s.repomanager.Recipes(s.db)
	list, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byRecipe, err := repo.IngredientsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, r := range list {
		ingredients := byRecipe[r.ID]
		if ingredients == nil {
			ingredients = []models.Ingredient{}
		}
		r.SetIngredients(ingredients)
	}
	return list, nil
}

// FindByName returns the user's recipe with exactly this name. Ingredients
// are not loaded.
func (s *RecipeService) FindByName(ctx context.Context, userID, name string) (*models.Recipe, error) {
	return s.repomanager.Recipes(s.db).FindByName(ctx, userID, name)
}

// Delete removes the recipe. Its image, if any, stays in object storage.
func (s *RecipeService) Delete(ctx context.Context, userID, id string) error {
	id, err := recipeID(id)
	if err != nil {
		return err
	}
	return s.repomanager.Recipes(s.db).Delete(ctx, userID, id)
}

func (s *RecipeService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// ImageUploadURL assigns a fresh storage key to the recipe image and returns
// a presigned PUT URL for it. A previous image is orphaned, not deleted.
func (s *RecipeService) ImageUploadURL(ctx context.Context, userID, id string) (url string, key string, err error) {
	if id, err = recipeID(id); err != nil {
		return "", "", err
	}
	repo := s.repomanager.Recipes(s.db)
	if _, err := repo.Get(ctx, userID, id); err != nil {
		return "", "", err
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key = imageStorageKey(userID)
	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}

	if err := repo.SetImageKey(ctx, userID, id, key); err != nil {
		return "", "", err
	}
	return req.URL, key, nil
}

// ImageURL returns a presigned GET URL for the recipe image, or
// common.ErrorNotFound when none was uploaded.
func (s *RecipeService) ImageURL(ctx context.Context, userID, id string) (string, error) {
	id, err := recipeID(id)
	if err != nil {
		return "", err
	}
	r, err := s.repomanager.Recipes(s.db).Get(ctx, userID, id)
	if err != nil {
		return "", err
	}
	if r.ImageKey == "" {
		return "", common.ErrorNotFound
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &r.ImageKey,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
