package observers

import (
	einocb "github.com/cloudwego/eino/callbacks"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"
)

// NewAllCallbacks aggregates the prompt and model observers into one callbacks.Handler and
// returns it together with the stage observer.
func NewAllCallbacks() []einocb.Handler {
	componentHandler := callbackHelper.NewHandlerHelper().
		ChatModel(newModelHandler()).
		Prompt(newPromptHandler()).
		Handler()

	return []einocb.Handler{NewStageHandler(nil), componentHandler}
}
