package wizard

import (
	"context"

	"github.com/AESiR-0/mad-labs-2/logger"
	"github.com/AESiR-0/mad-labs-2/models"
)

// Submitter delivers a completed application.
type Submitter interface {
	Submit(ctx context.Context, req *models.ApplicationRequest) error
}

// Controller drives a Machine and performs the single network call the
// last step triggers. It never retries; a failed submission leaves the
// machine in StatusFailed with its data intact.
type Controller struct {
	machine   *Machine
	submitter Submitter
	logger    logger.Logger
}

func NewController(submitter Submitter, log logger.Logger) *Controller {
	return &Controller{
		machine:   New(),
		submitter: submitter,
		logger:    log,
	}
}

func (c *Controller) Machine() *Machine { return c.machine }

func (c *Controller) SelectRole(role models.Role) error {
	_, err := c.machine.Dispatch(SelectRole{Role: role})
	return err
}

func (c *Controller) SetField(key, value string) error {
	_, err := c.machine.Dispatch(SetField{Key: key, Value: value})
	return err
}

func (c *Controller) Back() error {
	_, err := c.machine.Dispatch(Back{})
	return err
}

// Next validates the current step and advances, submitting when the step
// is the last one. The returned error covers invalid transitions only; the
// submission outcome is read from the machine.
func (c *Controller) Next(ctx context.Context) error {
	req, err := c.machine.Dispatch(Next{})
	if err != nil || req == nil {
		return err
	}

	submitErr := c.submitter.Submit(ctx, req)
	if submitErr != nil {
		c.logger.Warn("application submission failed", map[string]interface{}{
			"role":  string(c.machine.Role()),
			"error": submitErr.Error(),
		})
	} else {
		c.logger.Info("application submitted", map[string]interface{}{
			"role": string(c.machine.Role()),
		})
	}

	_, err = c.machine.Dispatch(SubmitResult{Err: submitErr})
	return err
}
