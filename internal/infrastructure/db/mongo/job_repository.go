package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jobtrackr/jobtracker-api/internal/core/domain"
	"github.com/jobtrackr/jobtracker-api/internal/core/ports"
)

const jobsCollection = "jobs"

// JobRepository persists job applications. Every query that names a job id
// also filters on user_id, so a job owned by another account is
// indistinguishable from one that does not exist. A malformed id gets the
// same treatment instead of surfacing a parse error.
type JobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{coll: db.Collection(jobsCollection)}
}

type mongoJob struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	CompanyName string             `bson:"company_name"`
	Role        string             `bson:"role"`
	Status      string             `bson:"status"`
	AppliedFrom string             `bson:"applied_from,omitempty"`
	AppliedDate string             `bson:"applied_date,omitempty"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mj *mongoJob) toDomain() *domain.Job {
	return &domain.Job{
		ID:          mj.ID.Hex(),
		UserID:      mj.UserID,
		CompanyName: mj.CompanyName,
		Role:        mj.Role,
		Status:      domain.JobStatus(mj.Status),
		AppliedFrom: mj.AppliedFrom,
		AppliedDate: mj.AppliedDate,
		Description: mj.Description,
		CreatedAt:   mj.CreatedAt.UTC(),
		UpdatedAt:   mj.UpdatedAt.UTC(),
	}
}

// ownerFilter builds the conjoined (job id, owner) filter. ok is false when
// the id is not a valid ObjectID, which callers treat as "no match".
func ownerFilter(userID, jobID string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "user_id": userID}, true
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoJob{
		UserID:      job.UserID,
		CompanyName: job.CompanyName,
		Role:        job.Role,
		Status:      string(job.Status),
		AppliedFrom: job.AppliedFrom,
		AppliedDate: job.AppliedDate,
		Description: job.Description,
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	created := *job
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// List returns all jobs owned by userID, most recently created first.
func (r *JobRepository) List(ctx context.Context, userID string) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := []*domain.Job{}
	for cursor.Next(ctx) {
		var mj mongoJob
		if err := cursor.Decode(&mj); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, mj.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) FindByID(ctx context.Context, userID, jobID string) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, ok := ownerFilter(userID, jobID)
	if !ok {
		return nil, domain.ErrJobNotFound
	}

	var mj mongoJob
	if err := r.coll.FindOne(ctx, filter).Decode(&mj); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return mj.toDomain(), nil
}

func (r *JobRepository) Update(ctx context.Context, userID, jobID string, fields ports.JobFields) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, ok := ownerFilter(userID, jobID)
	if !ok {
		return 0, nil
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if fields.CompanyName != nil {
		set["company_name"] = *fields.CompanyName
	}
	if fields.Role != nil {
		set["role"] = *fields.Role
	}
	if fields.Status != nil {
		set["status"] = string(*fields.Status)
	}
	if fields.AppliedFrom != nil {
		set["applied_from"] = *fields.AppliedFrom
	}
	if fields.AppliedDate != nil {
		set["applied_date"] = *fields.AppliedDate
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("update job: %w", err)
	}
	return res.MatchedCount, nil
}

func (r *JobRepository) Delete(ctx context.Context, userID, jobID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, ok := ownerFilter(userID, jobID)
	if !ok {
		return 0, nil
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete job: %w", err)
	}
	return res.DeletedCount, nil
}

// DeleteByOwner removes every job owned by userID. Used by the account
// deletion cascade.
func (r *JobRepository) DeleteByOwner(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete jobs by owner: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the owner index driving list and cascade queries.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
