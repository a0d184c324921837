package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"campaigninsights/internal/application/insight"
	"campaigninsights/internal/domain/campaign"
	"campaigninsights/internal/infrastructure/cache"
)

const sampleCSV = "Campaign,Product,Demand Value,Start Date,End Date\n" +
	"A,P1,10,1-Mar,10-Mar\n" +
	"B,P2,20,5-Mar,15-Mar\n" +
	"A,P3,5,2-Mar,20-Mar\n"

// gatedGenerator блокируется до закрытия release
type gatedGenerator struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedGenerator) Generate(ctx context.Context, f insight.Facts) (string, error) {
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.release:
		return "ok " + f.Campaign, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (g *gatedGenerator) Source() string { return insight.SourceExternal }

type UseCaseSuite struct {
	suite.Suite
	store *cache.SessionStore
	uc    *UseCase
}

func (s *UseCaseSuite) SetupTest() {
	s.store = cache.NewSessionStore(time.Minute)
	summarizer := insight.NewSummarizer(insight.NewTemplateGenerator(), time.Second, nil)
	s.uc = NewUseCase(s.store, summarizer, campaign.NewNormalizer(2025), nil)
}

func (s *UseCaseSuite) TestUploadBuildsReport() {
	res, err := s.uc.Upload(context.Background(), "data.csv", strings.NewReader(sampleCSV))
	s.Require().NoError(err)

	s.NotEmpty(res.SessionID)
	s.Len(res.Rows, 3)
	s.Require().Len(res.Ranking, 2)
	s.Equal("B", res.Ranking[0].Campaign)
	s.Equal(20.0, res.Ranking[0].TotalDemand)
	s.Equal("A", res.Ranking[1].Campaign)
	s.Equal(15.0, res.Ranking[1].TotalDemand)
	s.Equal(insight.SourceTemplate, res.Generator)
	s.Require().Len(res.Chart.Series, 1)
	s.Len(res.Chart.Series[0].Data, 2)
	s.Equal(1, s.store.Len())
}

func (s *UseCaseSuite) TestUploadMissingColumns() {
	_, err := s.uc.Upload(context.Background(), "data.csv", strings.NewReader("Campaign,Product\nA,P1\n"))

	var missing *campaign.MissingColumnsError
	s.Require().ErrorAs(err, &missing)
	s.ElementsMatch([]string{"Demand Value", "Start Date", "End Date"}, missing.Missing)
	s.Equal(0, s.store.Len())
}

func (s *UseCaseSuite) TestUploadInvalidDate() {
	csv := "Campaign,Product,Demand Value,Start Date,End Date\nA,P1,10,31-Foo,10-Mar\n"
	_, err := s.uc.Upload(context.Background(), "data.csv", strings.NewReader(csv))

	var dateErr *campaign.DateParseError
	s.Require().ErrorAs(err, &dateErr)
	s.Equal(0, s.store.Len())
}

func (s *UseCaseSuite) TestInsightTemplate() {
	res, err := s.uc.Upload(context.Background(), "data.csv", strings.NewReader(sampleCSV))
	s.Require().NoError(err)

	ins, err := s.uc.Insight(context.Background(), res.SessionID, "A")
	s.Require().NoError(err)
	s.Equal("A", ins.Campaign)
	s.False(ins.Failed)
	s.Contains(ins.Text, "P1, P3")
}

func (s *UseCaseSuite) TestInsightUnknownCampaign() {
	res, err := s.uc.Upload(context.Background(), "data.csv", strings.NewReader(sampleCSV))
	s.Require().NoError(err)

	_, err = s.uc.Insight(context.Background(), res.SessionID, "Z")
	s.ErrorIs(err, ErrCampaignNotFound)

	_, err = s.uc.Insight(context.Background(), "missing", "A")
	s.ErrorIs(err, cache.ErrSessionNotFound)
}

func (s *UseCaseSuite) TestExportAndDelete() {
	res, err := s.uc.Upload(context.Background(), "data.csv", strings.NewReader(sampleCSV))
	s.Require().NoError(err)

	var buf bytes.Buffer
	name, err := s.uc.Export(res.SessionID, &buf)
	s.Require().NoError(err)
	s.Equal("data.csv", name)
	s.Positive(buf.Len())

	s.Require().NoError(s.uc.Delete(res.SessionID))
	_, err = s.uc.Session(res.SessionID)
	s.ErrorIs(err, cache.ErrSessionNotFound)
	s.ErrorIs(s.uc.Delete(res.SessionID), cache.ErrSessionNotFound)
}

func TestUseCaseSuite(t *testing.T) {
	suite.Run(t, new(UseCaseSuite))
}

func TestInsightInFlightConflict(t *testing.T) {
	store := cache.NewSessionStore(time.Minute)
	gen := &gatedGenerator{started: make(chan struct{}), release: make(chan struct{})}
	uc := NewUseCase(store, insight.NewSummarizer(gen, 5*time.Second, nil), campaign.NewNormalizer(2025), nil)

	res, err := uc.Upload(context.Background(), "data.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	done := make(chan insight.Insight, 1)
	go func() {
		ins, _ := uc.Insight(context.Background(), res.SessionID, "A")
		done <- ins
	}()
	<-gen.started

	_, err = uc.Insight(context.Background(), res.SessionID, "A")
	assert.True(t, errors.Is(err, cache.ErrInsightInFlight))

	close(gen.release)
	first := <-done
	assert.Equal(t, "ok A", first.Text)

	second, err := uc.Insight(context.Background(), res.SessionID, "B")
	require.NoError(t, err)
	assert.Equal(t, "ok B", second.Text)
}
