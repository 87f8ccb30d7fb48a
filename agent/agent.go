package agent

import (
	"image"
	"sync"
	"time"

	"github.com/mimiclabs/mimic/analytics"
	"github.com/mimiclabs/mimic/automation"
	"github.com/mimiclabs/mimic/config"
	"github.com/mimiclabs/mimic/container"
	"github.com/mimiclabs/mimic/generator"
	"github.com/mimiclabs/mimic/learning"
	"github.com/mimiclabs/mimic/llm"
	"github.com/mimiclabs/mimic/logger"
	"github.com/mimiclabs/mimic/rest"
	"github.com/mimiclabs/mimic/service"
	"github.com/mimiclabs/mimic/verify"
)

// Agent composes the learning and execution services behind the REST
// surface.
type Agent struct {
	Config           config.Config
	container        *container.DIContainer
	httpServer       *rest.Server
	learningService  *service.LearningService
	executionService *service.ExecutionService
	shutdown         bool
	shutdownLock     sync.Mutex
	wg               sync.WaitGroup
}

func New(conf config.Config) (*Agent, error) {
	a := &Agent{
		Config: conf,
	}
	setup := []func() error{
		a.setupContainer,
		a.setupLearningService,
		a.setupExecutionService,
		a.setupHttpServer,
	}
	for _, fn := range setup {
		if err := fn(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Agent) setupContainer() error {
	a.container = container.NewDiContainer()
	a.container.Init(a.Config)
	return nil
}

func (a *Agent) setupLearningService() error {
	textGen := llm.NewOllamaClient(a.Config.Ollama)
	gen := generator.NewGenerator(textGen, a.Config.Generation)
	engine := learning.NewEngine(a.Config.Pattern, gen,
		a.container.GetWorkflowDao(), a.container.GetSessionDao(), a.container.GetTimelineDao())
	a.learningService = service.NewLearningService(a.Config.Learning, engine,
		a.container.GetSessionDao(), a.container.GetTimelineDao(), &a.wg)
	a.learningService.Start()
	return nil
}

func (a *Agent) setupExecutionService() error {
	actionTimeout := time.Duration(a.Config.Automation.ActionTimeoutSeconds) * time.Second
	desktop := automation.NewHeadlessDesktop(actionTimeout)
	browser := automation.HeadlessBrowser{}
	files := automation.LocalFiles{}

	var verifier verify.Verifier
	if a.Config.Automation.Headless {
		verifier = verify.NoopVerifier{}
	} else {
		verifier = verify.NewPixelDiffVerifier(captureFrame, a.Config.Automation)
	}

	collector, err := analytics.NewStepCollector("mimic_steps.log")
	if err != nil {
		return err
	}
	a.executionService = service.NewExecutionService(a.Config.Automation,
		a.container.GetWorkflowDao(), a.container.GetExecutionLogDao(),
		desktop, browser, files, verifier, collector)
	return nil
}

func (a *Agent) setupHttpServer() error {
	var err error
	a.httpServer, err = rest.NewServer(a.Config.HttpPort, a.container, a.executionService, a.learningService)
	return err
}

func (a *Agent) Start() error {
	go func() {
		if err := a.httpServer.Start(); err != nil {
			logger.Error("http server stopped")
		}
	}()
	return nil
}

func (a *Agent) Shutdown() error {
	logger.Info("shutting down agent")
	a.shutdownLock.Lock()
	defer a.shutdownLock.Unlock()
	if a.shutdown {
		return nil
	}
	a.shutdown = true

	shutdown := []func() error{
		a.learningService.Stop,
		a.httpServer.Stop,
	}
	for _, fn := range shutdown {
		if err := fn(); err != nil {
			return err
		}
	}
	logger.Info("waiting for all services to shutdown...")
	a.wg.Wait()
	return nil
}

// captureFrame is the hook for a real screen grabber; there is no capture
// backend in this build, so verification sees missing frames.
func captureFrame() image.Image {
	return nil
}
