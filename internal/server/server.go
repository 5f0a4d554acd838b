package server

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ideagraph/loom/internal/config"
	"github.com/ideagraph/loom/internal/core"
	"github.com/ideagraph/loom/internal/core/model"
	"github.com/ideagraph/loom/internal/core/relevance"
	"github.com/ideagraph/loom/internal/driver"
	"github.com/ideagraph/loom/internal/llm"
)

type Server struct {
	Pipeline *core.Pipeline
	Store    *driver.ProjectStore
}

// NewServer wires config, the graph driver and the LLM client. LLM setup is
// optional: without a usable provider the pipeline runs name-only.
func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("No config file at %s, using defaults: %v", cfgPath, err)
		cfg = config.Default()
	}

	// Env vars override file values.
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		cfg.Memgraph.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		cfg.Memgraph.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		cfg.Memgraph.Password = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	d, err := driver.NewMemgraphDriver(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
	if err != nil {
		log.Fatalf("Failed to connect to Memgraph: %v", err)
	}
	if err := d.BuildIndices(context.Background()); err != nil {
		log.Printf("Failed to build indices: %v", err)
	}

	var llmClient llm.Client
	if cfg.LLM.Provider != "" {
		llmClient, err = llm.NewClient(context.Background(), cfg.LLM)
		if err != nil {
			log.Printf("LLM unavailable, imports will run name-only: %v", err)
			llmClient = nil
		}
	}

	return &Server{
		Pipeline: core.NewPipeline(llmClient, cfg),
		Store:    driver.NewProjectStore(d),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/projects", s.CreateProject)
	r.GET("/projects/:id/graph", s.GetGraph)
	r.POST("/projects/:id/import", s.Import)
	r.POST("/projects/:id/merge", s.Merge)
	r.POST("/projects/:id/workitem", s.WorkItem)
	r.POST("/relevance", s.Relevance)

	return r
}

type CreateProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	id := uuid.New().String()
	if err := s.Store.CreateProject(c.Request.Context(), id, req.Name); err != nil {
		log.Printf("Failed to create project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "name": req.Name})
}

type ImportRequest struct {
	Text      string       `json:"text"`
	IdeaTitle string       `json:"ideaTitle"`
	Fields    *core.Fields `json:"fields"`
}

func (s *Server) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Text == "" && req.Fields == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var result core.ImportResult
	if req.Fields != nil {
		result = s.Pipeline.ImportFields(c.Request.Context(), *req.Fields)
	} else {
		result = s.Pipeline.ImportText(c.Request.Context(), req.IdeaTitle, req.Text)
	}

	projectID := c.Param("id")
	if err := s.Store.SaveGraph(c.Request.Context(), projectID, result.Graph); err != nil {
		log.Printf("Failed to save graph: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save graph"})
		return
	}

	c.JSON(http.StatusOK, result)
}

type MergeRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) Merge(c *gin.Context) {
	var req MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	projectID := c.Param("id")
	ctx := c.Request.Context()

	existing, err := s.Store.LoadSummaries(ctx, projectID)
	if err != nil {
		log.Printf("Failed to load project %s: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load project"})
		return
	}

	result := s.Pipeline.Merge(ctx, req.Text, existing)

	for _, update := range result.Updates {
		if err := s.Store.ApplyUpdate(ctx, projectID, update); err != nil {
			log.Printf("Failed to apply update to %s: %v", update.EntityID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply updates"})
			return
		}
	}
	if err := s.Store.SaveGraph(ctx, projectID, result.Graph); err != nil {
		log.Printf("Failed to save merged nodes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save graph"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) GetGraph(c *gin.Context) {
	graph, err := s.Store.LoadGraph(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("Failed to load graph: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load graph"})
		return
	}
	c.JSON(http.StatusOK, graph)
}

type WorkItemRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

func (s *Server) WorkItem(c *gin.Context) {
	var req WorkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if s.Pipeline.Enricher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No LLM configured"})
		return
	}

	ctx := c.Request.Context()
	existing, err := s.Store.LoadSummaries(ctx, c.Param("id"))
	if err != nil {
		log.Printf("Failed to load project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load project"})
		return
	}

	var candidates []relevance.Candidate
	for _, e := range existing {
		if e.Type == model.NodeFeature || e.Type == model.NodeScreen {
			candidates = append(candidates, relevance.Candidate{ID: e.ID, Name: e.Name})
		}
	}

	description, err := s.Pipeline.Enricher.DescribeWorkItem(ctx, req.Prompt, candidates)
	if err != nil {
		log.Printf("Failed to describe work item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate description"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"description": description})
}

type RelevanceRequest struct {
	Prompt     string                `json:"prompt" binding:"required"`
	Candidates []relevance.Candidate `json:"candidates"`
	MinScore   float64               `json:"minScore"`
}

func (s *Server) Relevance(c *gin.Context) {
	var req RelevanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ranked := relevance.Rank(req.Prompt, req.Candidates, req.MinScore)
	c.JSON(http.StatusOK, gin.H{"results": ranked})
}
