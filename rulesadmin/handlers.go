package rulesadmin

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/reqcraft/reqcraft/errx"
)

// Register mounts the rule administration endpoints on the given router:
//
//	GET    /rules        list rules (limit/offset query parameters)
//	GET    /rules/:id    fetch one rule
//	POST   /rules        create a rule
//	PUT    /rules/:id    replace a rule
//	DELETE /rules/:id    remove a rule
func Register(router fiber.Router, svc *Service) {
	router.Get("/rules", listRules(svc)).Name("listRules")
	router.Get("/rules/:id", getRule(svc)).Name("getRule")
	router.Post("/rules", createRule(svc)).Name("createRule")
	router.Put("/rules/:id", updateRule(svc)).Name("updateRule")
	router.Delete("/rules/:id", deleteRule(svc)).Name("deleteRule")
}

func listRules(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := int64(c.QueryInt("limit", 50))
		offset := int64(c.QueryInt("offset", 0))
		rules, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"items": rules, "count": len(rules)})
	}
}

func getRule(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rule, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(rule)
	}
}

func createRule(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dto, err := decodeRule(c)
		if err != nil {
			return err
		}
		created, err := svc.Create(c.UserContext(), dto)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

func updateRule(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dto, err := decodeRule(c)
		if err != nil {
			return err
		}
		updated, err := svc.Update(c.UserContext(), c.Params("id"), dto)
		if err != nil {
			return err
		}
		return c.JSON(updated)
	}
}

func deleteRule(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func decodeRule(c *fiber.Ctx) (RouteRuleDTO, error) {
	var dto RouteRuleDTO
	if err := json.Unmarshal(c.Body(), &dto); err != nil {
		return RouteRuleDTO{}, errx.HTTPErrors.New(errx.ErrBadRequest)
	}
	return dto, nil
}
