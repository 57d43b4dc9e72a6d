// internal/common/camunda/camundatest/client.go
package camundatest

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// FakeJobClient records the commands a handler dispatches so tests can
// assert how a job was resolved without a running broker.
type FakeJobClient struct {
	Completed       bool
	CompletedJobKey int64
	CompletedVars   interface{}

	Failed        bool
	FailedJobKey  int64
	FailedRetries int32
	FailedMessage string

	Thrown          bool
	ThrownJobKey    int64
	ThrownErrorCode string
	ThrownMessage   string
}

var _ worker.JobClient = (*FakeJobClient)(nil)

func (c *FakeJobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return &fakeCompleteCommand{client: c}
}

func (c *FakeJobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return &fakeFailCommand{client: c}
}

func (c *FakeJobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return &fakeThrowErrorCommand{client: c}
}

type fakeCompleteCommand struct{ client *FakeJobClient }

func (f *fakeCompleteCommand) JobKey(key int64) commands.CompleteJobCommandStep2 {
	f.client.CompletedJobKey = key
	return f
}

func (f *fakeCompleteCommand) VariablesFromString(vars string) (commands.DispatchCompleteJobCommand, error) {
	f.client.CompletedVars = vars
	return f, nil
}

func (f *fakeCompleteCommand) VariablesFromStringer(vars fmt.Stringer) (commands.DispatchCompleteJobCommand, error) {
	f.client.CompletedVars = vars.String()
	return f, nil
}

func (f *fakeCompleteCommand) VariablesFromMap(vars map[string]interface{}) (commands.DispatchCompleteJobCommand, error) {
	f.client.CompletedVars = vars
	return f, nil
}

func (f *fakeCompleteCommand) VariablesFromObject(vars interface{}) (commands.DispatchCompleteJobCommand, error) {
	f.client.CompletedVars = vars
	return f, nil
}

func (f *fakeCompleteCommand) VariablesFromObjectIgnoreOmitempty(vars interface{}) (commands.DispatchCompleteJobCommand, error) {
	f.client.CompletedVars = vars
	return f, nil
}

func (f *fakeCompleteCommand) Send(context.Context) (*pb.CompleteJobResponse, error) {
	f.client.Completed = true
	return &pb.CompleteJobResponse{}, nil
}

type fakeFailCommand struct{ client *FakeJobClient }

func (f *fakeFailCommand) JobKey(key int64) commands.FailJobCommandStep2 {
	f.client.FailedJobKey = key
	return f
}

func (f *fakeFailCommand) Retries(retries int32) commands.FailJobCommandStep3 {
	f.client.FailedRetries = retries
	return f
}

func (f *fakeFailCommand) RetryBackoff(time.Duration) commands.FailJobCommandStep3 {
	return f
}

func (f *fakeFailCommand) ErrorMessage(msg string) commands.FailJobCommandStep3 {
	f.client.FailedMessage = msg
	return f
}

func (f *fakeFailCommand) VariablesFromString(string) (commands.DispatchFailJobCommand, error) {
	return f, nil
}

func (f *fakeFailCommand) VariablesFromStringer(fmt.Stringer) (commands.DispatchFailJobCommand, error) {
	return f, nil
}

func (f *fakeFailCommand) VariablesFromMap(map[string]interface{}) (commands.DispatchFailJobCommand, error) {
	return f, nil
}

func (f *fakeFailCommand) VariablesFromObject(interface{}) (commands.DispatchFailJobCommand, error) {
	return f, nil
}

func (f *fakeFailCommand) VariablesFromObjectIgnoreOmitempty(interface{}) (commands.DispatchFailJobCommand, error) {
	return f, nil
}

func (f *fakeFailCommand) Send(context.Context) (*pb.FailJobResponse, error) {
	f.client.Failed = true
	return &pb.FailJobResponse{}, nil
}

type fakeThrowErrorCommand struct{ client *FakeJobClient }

func (f *fakeThrowErrorCommand) JobKey(key int64) commands.ThrowErrorCommandStep2 {
	f.client.ThrownJobKey = key
	return f
}

func (f *fakeThrowErrorCommand) ErrorCode(code string) commands.DispatchThrowErrorCommand {
	f.client.ThrownErrorCode = code
	return f
}

func (f *fakeThrowErrorCommand) ErrorMessage(msg string) commands.DispatchThrowErrorCommand {
	f.client.ThrownMessage = msg
	return f
}

func (f *fakeThrowErrorCommand) VariablesFromString(string) (commands.DispatchThrowErrorCommand, error) {
	return f, nil
}

func (f *fakeThrowErrorCommand) VariablesFromStringer(fmt.Stringer) (commands.DispatchThrowErrorCommand, error) {
	return f, nil
}

func (f *fakeThrowErrorCommand) VariablesFromMap(map[string]interface{}) (commands.DispatchThrowErrorCommand, error) {
	return f, nil
}

func (f *fakeThrowErrorCommand) VariablesFromObject(interface{}) (commands.DispatchThrowErrorCommand, error) {
	return f, nil
}

func (f *fakeThrowErrorCommand) VariablesFromObjectIgnoreOmitempty(interface{}) (commands.DispatchThrowErrorCommand, error) {
	return f, nil
}

func (f *fakeThrowErrorCommand) Send(context.Context) (*pb.ThrowErrorResponse, error) {
	f.client.Thrown = true
	return &pb.ThrowErrorResponse{}, nil
}
