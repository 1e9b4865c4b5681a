package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/vertexlabs/go-auth-boilerplate/config"
	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/repository"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/helpers"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/mailer"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/session"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	vertexRepo  repository.VertexRepository
	redisClient *redis.Client
	sessions    *session.Manager
	gcsClient   *storage.Client

	mailgunClient *mailer.Mailgun
	rabbitPub     *helpers.RabbitPublisher
	esClient      *elasticsearch.Client
)

func SetConfig(c *config.Config)                  { cfg = c }
func GetConfig() *config.Config                   { return cfg }
func SetLogger(l *logrus.Logger)                  { logger = l }
func GetLogger() *logrus.Logger                   { return logger }
func SetVertexRepo(r repository.VertexRepository) { vertexRepo = r }
func GetVertexRepo() repository.VertexRepository  { return vertexRepo }
func SetRedis(r *redis.Client)                    { redisClient = r }
func GetRedis() *redis.Client                     { return redisClient }
func SetSessions(m *session.Manager)              { sessions = m }
func GetSessions() *session.Manager               { return sessions }
func SetGCS(s *storage.Client)                    { gcsClient = s }
func GetGCS() *storage.Client                     { return gcsClient }

func SetMailgun(m *mailer.Mailgun)            { mailgunClient = m }
func GetMailgun() *mailer.Mailgun             { return mailgunClient }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
