package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/core/activity"
	"mergington.dev/activities/internal/pkg/keylock"
	"mergington.dev/activities/internal/pkg/middlewares"
	"mergington.dev/activities/internal/server/svr"
	"mergington.dev/activities/internal/util/rekuest"
)

type Activity struct {
	fx.In

	Config             *appconfig.Config
	ActivityService    *activity.Service
	IdempotencyStorage fiber.Storage
	IdempotencyLocker  keylock.Locker
}

func RegisterActivity(activities *svr.Activities, c Activity) {
	idempotency := middlewares.Idempotency(&middlewares.IdempotencyConfig{
		Lifetime:  c.Config.IdempotencyLifetime,
		KeyHeader: constant.IdempotencyKeyHeader,
		KeepResponseHeaders: []string{
			fiber.HeaderContentType,
		},
		Storage: c.IdempotencyStorage,
		Locker:  c.IdempotencyLocker,
	})

	activities.Get("/", c.GetActivities)
	activities.Post("/:name/signup", idempotency, c.Signup)
	activities.Post("/:name/unregister", idempotency, c.Unregister)
}

type RosterChangeRequest struct {
	Email string `query:"email" validate:"required,notblank"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// @Summary  Get All Activities
// @Tags     Activity
// @Produce  json
// @Success  200  {object}  activity.Roster  "Activity name to activity record, in directory order"
// @Router   /activities [GET]
func (c *Activity) GetActivities(ctx *fiber.Ctx) error {
	activities, err := c.ActivityService.GetActivities(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(activities)
}

// @Summary  Sign Up for an Activity
// @Tags     Activity
// @Produce  json
// @Param    name             path    string  true   "Activity name"
// @Param    email            query   string  true   "Student email"
// @Param    Idempotency-Key  header  string  false  "Replays the stored response of an earlier successful request with the same key"
// @Success  200  {object}  MessageResponse
// @Failure  400  {object}  apierr.APIError  "Student is already signed up for this activity, or the activity is full"
// @Failure  404  {object}  apierr.APIError  "Activity not found"
// @Failure  422  {object}  apierr.APIError  "Missing or blank email"
// @Router   /activities/{name}/signup [POST]
func (c *Activity) Signup(ctx *fiber.Ctx) error {
	var request RosterChangeRequest
	if err := rekuest.ValidQuery(ctx, &request); err != nil {
		return err
	}

	message, err := c.ActivityService.Signup(ctx.UserContext(), ctx.Params("name"), request.Email)
	if err != nil {
		return err
	}

	return ctx.JSON(MessageResponse{Message: message})
}

// @Summary  Unregister from an Activity
// @Tags     Activity
// @Produce  json
// @Param    name             path    string  true   "Activity name"
// @Param    email            query   string  true   "Student email"
// @Param    Idempotency-Key  header  string  false  "Replays the stored response of an earlier successful request with the same key"
// @Success  200  {object}  MessageResponse
// @Failure  400  {object}  apierr.APIError  "Student is not signed up for this activity"
// @Failure  404  {object}  apierr.APIError  "Activity not found"
// @Failure  422  {object}  apierr.APIError  "Missing or blank email"
// @Router   /activities/{name}/unregister [POST]
func (c *Activity) Unregister(ctx *fiber.Ctx) error {
	var request RosterChangeRequest
	if err := rekuest.ValidQuery(ctx, &request); err != nil {
		return err
	}

	message, err := c.ActivityService.Unregister(ctx.UserContext(), ctx.Params("name"), request.Email)
	if err != nil {
		return err
	}

	return ctx.JSON(MessageResponse{Message: message})
}
