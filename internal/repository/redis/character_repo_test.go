package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dom/zodiac-catalog/internal/domain"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type CharacterRepoTestSuite struct {
	suite.Suite
	client *redis.Client
	mock   redismock.ClientMock
	repo   *characterRepository
	now    time.Time
}

func (s *CharacterRepoTestSuite) SetupTest() {
	s.client, s.mock = redismock.NewClientMock()
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.repo = NewCharacterRepository(s.client)
	s.repo.now = func() time.Time { return s.now }
}

func (s *CharacterRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestCharacterRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CharacterRepoTestSuite))
}

func (s *CharacterRepoTestSuite) marshal(c *domain.Character) string {
	data, err := json.Marshal(toData(c))
	s.Require().NoError(err)
	return string(data)
}

func (s *CharacterRepoTestSuite) stored(name, sign string, seq int64) *domain.Character {
	return &domain.Character{
		ID:         uuid.New(),
		Seq:        seq,
		Name:       name,
		ZodiacSign: sign,
		CreatedAt:  s.now,
		UpdatedAt:  s.now,
	}
}

func (s *CharacterRepoTestSuite) TestCreate() {
	ctx := context.Background()
	character := &domain.Character{ID: uuid.New(), Name: "Seiya", ZodiacSign: "Sagitario"}
	expected := s.stored("Seiya", "Sagitario", 7)
	expected.ID = character.ID

	s.mock.ExpectIncr(sequenceKey).SetVal(7)
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet(key(character.ID), s.marshal(expected), 0).SetVal("OK")
	s.mock.ExpectZAdd(indexKey, redis.Z{Score: 7, Member: character.ID.String()}).SetVal(1)
	s.mock.ExpectTxPipelineExec()

	err := s.repo.Create(ctx, character)
	s.Require().NoError(err)
	s.Equal(int64(7), character.Seq)
	s.Equal(s.now, character.CreatedAt)
}

func (s *CharacterRepoTestSuite) TestCreate_RoundTripsThroughGetByID() {
	ctx := context.Background()
	s.repo.now = func() time.Time {
		return time.Date(2024, 3, 1, 13, 0, 0, 123456789, time.FixedZone("CET", 3600))
	}
	character := &domain.Character{ID: uuid.New(), Name: "Hyoga", ZodiacSign: "Acuario"}

	expected := *character
	expected.Seq = 3
	expected.CreatedAt = time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC)
	expected.UpdatedAt = expected.CreatedAt

	s.mock.ExpectIncr(sequenceKey).SetVal(3)
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet(key(character.ID), s.marshal(&expected), 0).SetVal("OK")
	s.mock.ExpectZAdd(indexKey, redis.Z{Score: 3, Member: character.ID.String()}).SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.Require().NoError(s.repo.Create(ctx, character))
	s.Equal(&expected, character)

	s.mock.ExpectGet(key(character.ID)).SetVal(s.marshal(&expected))
	got, err := s.repo.GetByID(ctx, character.ID)
	s.Require().NoError(err)
	s.Equal(character, got)
}

func (s *CharacterRepoTestSuite) TestCreate_SequenceError() {
	ctx := context.Background()

	s.mock.ExpectIncr(sequenceKey).SetErr(errors.New("connection refused"))

	err := s.repo.Create(ctx, &domain.Character{Name: "Seiya"})
	s.ErrorIs(err, domain.ErrStore)
}

func (s *CharacterRepoTestSuite) TestGetByID() {
	ctx := context.Background()
	shiryu := s.stored("Shiryu", "Libra", 2)

	s.mock.ExpectGet(key(shiryu.ID)).SetVal(s.marshal(shiryu))
	got, err := s.repo.GetByID(ctx, shiryu.ID)
	s.Require().NoError(err)
	s.Equal(shiryu, got)

	missing := uuid.New()
	s.mock.ExpectGet(key(missing)).RedisNil()
	_, err = s.repo.GetByID(ctx, missing)
	s.ErrorIs(err, domain.ErrNotFound)

	s.mock.ExpectGet(key(missing)).SetErr(errors.New("timeout"))
	_, err = s.repo.GetByID(ctx, missing)
	s.ErrorIs(err, domain.ErrStore)
}

func (s *CharacterRepoTestSuite) TestList() {
	ctx := context.Background()
	ikki := s.stored("Ikki", "Leo", 1)
	shaka := s.stored("Shaka", "Virgo", 2)
	aiolia := s.stored("Aiolia", "Leo", 3)
	ids := []string{ikki.ID.String(), shaka.ID.String(), aiolia.ID.String()}
	keys := []string{key(ikki.ID), key(shaka.ID), key(aiolia.ID)}

	s.mock.ExpectZRange(indexKey, 0, -1).SetVal(ids)
	s.mock.ExpectMGet(keys...).SetVal([]interface{}{s.marshal(ikki), s.marshal(shaka), s.marshal(aiolia)})

	all, err := s.repo.List(ctx, domain.CharacterFilter{})
	s.Require().NoError(err)
	s.Equal([]*domain.Character{ikki, shaka, aiolia}, all)

	// A document removed between ZRANGE and MGET is skipped.
	s.mock.ExpectZRange(indexKey, 0, -1).SetVal(ids)
	s.mock.ExpectMGet(keys...).SetVal([]interface{}{s.marshal(ikki), nil, s.marshal(aiolia)})

	leos, err := s.repo.List(ctx, domain.CharacterFilter{ZodiacSign: "Leo"})
	s.Require().NoError(err)
	s.Equal([]*domain.Character{ikki, aiolia}, leos)
}

func (s *CharacterRepoTestSuite) TestList_Empty() {
	s.mock.ExpectZRange(indexKey, 0, -1).SetVal([]string{})

	all, err := s.repo.List(context.Background(), domain.CharacterFilter{})
	s.Require().NoError(err)
	s.NotNil(all)
	s.Empty(all)
}

func (s *CharacterRepoTestSuite) TestUpdate() {
	ctx := context.Background()
	seiya := s.stored("Seiya", "Escorpio", 1)

	s.mock.ExpectSetXX(key(seiya.ID), s.marshal(seiya), 0).SetVal(true)
	s.Require().NoError(s.repo.Update(ctx, seiya))

	s.mock.ExpectSetXX(key(seiya.ID), s.marshal(seiya), 0).SetVal(false)
	s.ErrorIs(s.repo.Update(ctx, seiya), domain.ErrNotFound)
}

func (s *CharacterRepoTestSuite) TestDelete() {
	ctx := context.Background()
	id := uuid.New()

	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel(key(id)).SetVal(1)
	s.mock.ExpectZRem(indexKey, id.String()).SetVal(1)
	s.mock.ExpectTxPipelineExec()
	s.Require().NoError(s.repo.Delete(ctx, id))

	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel(key(id)).SetVal(0)
	s.mock.ExpectZRem(indexKey, id.String()).SetVal(0)
	s.mock.ExpectTxPipelineExec()
	s.ErrorIs(s.repo.Delete(ctx, id), domain.ErrNotFound)
}

func (s *CharacterRepoTestSuite) TestDeleteAllAndCount() {
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	s.mock.ExpectZRange(indexKey, 0, -1).SetVal([]string{a.String(), b.String()})
	s.mock.ExpectDel(key(a), key(b), indexKey).SetVal(3)
	n, err := s.repo.DeleteAll(ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	s.mock.ExpectZCard(indexKey).SetVal(0)
	count, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Zero(count)
}
