package mongostore

import (
	"context"
	"time"

	"blog-backend/internal/models"
	"blog-backend/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PostRepository struct {
	ColPosts    *mongo.Collection
	ColComments *mongo.Collection
}

func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	now := time.Now().UTC()
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	if p.Likes == nil {
		p.Likes = []bson.ObjectID{}
	}
	p.CreatedAt, p.UpdatedAt = now, now

	_, err := r.ColPosts.InsertOne(ctx, p)
	return mapErr(err)
}

func (r *PostRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.ColPosts.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

// sortField maps a public sort key onto the derived or stored field.
func sortField(key string) string {
	switch key {
	case repository.SortLikes:
		return "likesCount"
	case repository.SortCommentCount:
		return "commentCount"
	default:
		return "createdAt"
	}
}

// List derives likesCount and commentCount per post, sorts descending with
// _id as tie-breaker, then pages.
func (r *PostRepository) List(ctx context.Context, q repository.ListQuery) ([]models.PostSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.D{
			{Key: "likesCount", Value: bson.D{{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$likes", bson.A{}}}}}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: r.ColComments.Name()},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "postId"},
			{Key: "as", Value: "comments"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "commentCount", Value: bson.D{{Key: "$size", Value: "$comments"}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "comments", Value: 0}}}},
		{{Key: "$sort", Value: bson.D{
			{Key: sortField(q.Sort), Value: -1},
			{Key: "_id", Value: -1},
		}}},
		{{Key: "$skip", Value: int64(q.Skip())}},
		{{Key: "$limit", Value: int64(q.Limit)}},
	}

	cur, err := r.ColPosts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.PostSummary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	return r.ColPosts.CountDocuments(ctx, bson.M{})
}

func (r *PostRepository) Update(ctx context.Context, id bson.ObjectID, u models.PostUpdate) (*models.Post, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Summary != nil {
		set["summary"] = *u.Summary
	}
	if u.Content != nil {
		set["content"] = *u.Content
	}
	if u.Cover != nil {
		set["cover"] = *u.Cover
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Post
	if err := r.ColPosts.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.ColPosts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ToggleLike adds or removes uid in one pipeline update, so concurrent
// toggles can never leave a duplicate id in likes.
func (r *PostRepository) ToggleLike(ctx context.Context, id, uid bson.ObjectID) (*models.Post, error) {
	likes := bson.D{{Key: "$ifNull", Value: bson.A{"$likes", bson.A{}}}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "likes", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$in", Value: bson.A{uid, likes}}},
				bson.D{{Key: "$filter", Value: bson.D{
					{Key: "input", Value: likes},
					{Key: "as", Value: "l"},
					{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$l", uid}}}},
				}}},
				bson.D{{Key: "$concatArrays", Value: bson.A{likes, bson.A{uid}}}},
			}}}},
			{Key: "updatedAt", Value: "$$NOW"},
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Post
	if err := r.ColPosts.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&p); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}
