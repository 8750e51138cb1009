package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/base/ptr"
	"github.com/x-xyz/goimx/domain"
	"github.com/x-xyz/goimx/domain/transfer"
	transferMocks "github.com/x-xyz/goimx/domain/transfer/mocks"
	walletMocks "github.com/x-xyz/goimx/domain/wallet/mocks"
)

var (
	signerAddress = "0xABC0000000000000000000000000000000000DEF"
	msgSignature  = "0x" + strings.Repeat("11", 64) + "1b"
)

type transferTestSuite struct {
	suite.Suite
	ctx         ctx.Ctx
	api         *transferMocks.Api
	deriver     *walletMocks.StarkDeriver
	starkSigner *walletMocks.StarkSigner
	signer      *walletMocks.Signer
	im          transfer.Usecase
}

func TestTransferSuite(t *testing.T) {
	suite.Run(t, new(transferTestSuite))
}

func (s *transferTestSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.api = &transferMocks.Api{}
	s.deriver = &walletMocks.StarkDeriver{}
	s.starkSigner = &walletMocks.StarkSigner{}
	s.signer = &walletMocks.Signer{}
	s.im = New(&TransferUseCaseCfg{Api: s.api, Deriver: s.deriver})
}

func (s *transferTestSuite) request() transfer.TransferRequest {
	return transfer.TransferRequest{
		Sender: "0xabc0000000000000000000000000000000000def",
		Token: transfer.Token{
			Type: transfer.TokenTypeERC721,
			Data: transfer.TokenData{TokenId: "42", TokenAddress: "0xc0ffee0000000000000000000000000000000001"},
		},
		Amount:   "1",
		Receiver: "0x1000000000000000000000000000000000000001",
	}
}

func signableResponse() *transfer.GetSignableTransferResponse {
	return &transfer.GetSignableTransferResponse{
		SignableMessage:     ptr.String("MSG"),
		PayloadHash:         ptr.String("0xHASH"),
		SenderStarkKey:      ptr.String("SK1"),
		SenderVaultId:       ptr.Of(transfer.StringScalar("V1")),
		ReceiverStarkKey:    ptr.String("SK2"),
		ReceiverVaultId:     ptr.Of(transfer.StringScalar("V2")),
		AssetId:             ptr.String("A1"),
		Amount:              ptr.String("1"),
		Nonce:               ptr.Of(transfer.NumberScalar("1")),
		ExpirationTimestamp: ptr.Of(transfer.NumberScalar("999")),
	}
}

func (s *transferTestSuite) expectSigning() {
	s.deriver.On("Derive", mock.Anything, s.signer).Return(s.starkSigner, nil).Once()
	s.signer.On("SignMessage", mock.Anything, "MSG").Return(msgSignature, nil).Once()
	s.starkSigner.On("SignHash", "0xHASH").Return("0xSTARKSIG", nil).Once()
	s.signer.On("GetAddress", mock.Anything).Return(signerAddress, nil).Once()
}

func (s *transferTestSuite) assertNothingSigned() {
	s.deriver.AssertNotCalled(s.T(), "Derive", mock.Anything, mock.Anything)
	s.signer.AssertNotCalled(s.T(), "SignMessage", mock.Anything, mock.Anything)
	s.starkSigner.AssertNotCalled(s.T(), "SignHash", mock.Anything)
	s.api.AssertNotCalled(s.T(), "CreateTransferV1", mock.Anything, mock.Anything)
}

func (s *transferTestSuite) TestExecuteTransfer() {
	req := s.request()
	s.api.On("GetSignableTransferV1", mock.Anything, transfer.GetSignableTransferRequest{
		Sender:   req.Sender,
		Token:    req.Token,
		Amount:   req.Amount,
		Receiver: req.Receiver,
	}).Return(signableResponse(), nil).Once()
	s.expectSigning()
	s.api.On("CreateTransferV1", mock.Anything, transfer.CreateTransferParams{
		Request: transfer.CreateTransferRequest{
			SenderStarkKey:      "SK1",
			SenderVaultId:       transfer.StringScalar("V1"),
			ReceiverStarkKey:    "SK2",
			ReceiverVaultId:     transfer.StringScalar("V2"),
			AssetId:             "A1",
			Amount:              "1",
			Nonce:               transfer.NumberScalar("1"),
			ExpirationTimestamp: transfer.NumberScalar("999"),
			StarkSignature:      "0xSTARKSIG",
		},
		EthAddress:   strings.ToLower(signerAddress),
		EthSignature: msgSignature,
	}).Return(&transfer.CreateTransferResponse{
		SentSignature: ptr.String("0xSTARKSIG"),
		Status:        ptr.String("success"),
		Time:          ptr.Int64(1650000000),
		TransferId:    ptr.Int64(7),
	}, nil).Once()

	res, err := s.im.ExecuteTransfer(s.ctx, s.signer, req)
	s.Require().NoError(err)
	s.Equal(&transfer.TransferResult{
		SentSignature: ptr.String("0xSTARKSIG"),
		Status:        ptr.String("success"),
		Time:          ptr.Int64(1650000000),
		TransferId:    ptr.Int64(7),
	}, res)

	s.api.AssertExpectations(s.T())
	s.deriver.AssertExpectations(s.T())
	s.signer.AssertExpectations(s.T())
	s.starkSigner.AssertExpectations(s.T())
}

func (s *transferTestSuite) TestNormalizesLegacyRecoveryId() {
	legacy := "0x" + strings.Repeat("11", 64) + "00"
	s.api.On("GetSignableTransferV1", mock.Anything, mock.Anything).Return(signableResponse(), nil).Once()
	s.deriver.On("Derive", mock.Anything, s.signer).Return(s.starkSigner, nil).Once()
	s.signer.On("SignMessage", mock.Anything, "MSG").Return(legacy, nil).Once()
	s.starkSigner.On("SignHash", "0xHASH").Return("0xSTARKSIG", nil).Once()
	s.signer.On("GetAddress", mock.Anything).Return(signerAddress, nil).Once()
	s.api.On("CreateTransferV1", mock.Anything, mock.MatchedBy(func(p transfer.CreateTransferParams) bool {
		return p.EthSignature == msgSignature
	})).Return(&transfer.CreateTransferResponse{}, nil).Once()

	_, err := s.im.ExecuteTransfer(s.ctx, s.signer, s.request())
	s.Require().NoError(err)
	s.api.AssertExpectations(s.T())
}

func (s *transferTestSuite) TestAbsentFieldsStayAbsent() {
	s.api.On("GetSignableTransferV1", mock.Anything, mock.Anything).Return(signableResponse(), nil).Once()
	s.expectSigning()
	s.api.On("CreateTransferV1", mock.Anything, mock.Anything).Return(&transfer.CreateTransferResponse{
		TransferId: ptr.Int64(7),
	}, nil).Once()

	res, err := s.im.ExecuteTransfer(s.ctx, s.signer, s.request())
	s.Require().NoError(err)
	s.Nil(res.Status)
	s.Nil(res.SentSignature)
	s.Nil(res.Time)
	s.Equal(ptr.Int64(7), res.TransferId)
}

func (s *transferTestSuite) TestMissingSignableMessage() {
	resp := signableResponse()
	resp.SignableMessage = nil
	s.api.On("GetSignableTransferV1", mock.Anything, mock.Anything).Return(resp, nil).Once()

	_, err := s.im.ExecuteTransfer(s.ctx, s.signer, s.request())
	s.ErrorIs(err, domain.ErrInvalidServerResponse)
	s.assertNothingSigned()
}

func (s *transferTestSuite) TestMissingPayloadHash() {
	resp := signableResponse()
	resp.PayloadHash = nil
	s.api.On("GetSignableTransferV1", mock.Anything, mock.Anything).Return(resp, nil).Once()

	_, err := s.im.ExecuteTransfer(s.ctx, s.signer, s.request())
	s.ErrorIs(err, domain.ErrInvalidServerResponse)
	s.assertNothingSigned()
}

func (s *transferTestSuite) TestMissingTransferParameter() {
	resp := signableResponse()
	resp.ReceiverVaultId = nil
	s.api.On("GetSignableTransferV1", mock.Anything, mock.Anything).Return(resp, nil).Once()

	_, err := s.im.ExecuteTransfer(s.ctx, s.signer, s.request())
	s.ErrorIs(err, domain.ErrInvalidServerResponse)
	s.Contains(err.Error(), "receiver_vault_id")
	s.assertNothingSigned()
}

func (s *transferTestSuite) TestInvalidRequest() {
	for name, mutate := range map[string]func(*transfer.TransferRequest){
		"sender":      func(r *transfer.TransferRequest) { r.Sender = "abc" },
		"amount":      func(r *transfer.TransferRequest) { r.Amount = "-1" },
		"token type":  func(r *transfer.TransferRequest) { r.Token.Type = "ERC1155" },
		"erc721 id":   func(r *transfer.TransferRequest) { r.Token.Data.TokenId = "" },
		"no receiver": func(r *transfer.TransferRequest) { r.Receiver = "" },
	} {
		req := s.request()
		mutate(&req)
		_, err := s.im.ExecuteTransfer(s.ctx, s.signer, req)
		s.ErrorIs(err, domain.ErrBadParamInput, name)
	}
	s.api.AssertNotCalled(s.T(), "GetSignableTransferV1", mock.Anything, mock.Anything)
}

func (s *transferTestSuite) TestSignableTransportFailure() {
	cause := &domain.TransportError{Op: "GetSignableTransferV1", StatusCode: 500}
	s.api.On("GetSignableTransferV1", mock.Anything, mock.Anything).Return(nil, cause).Once()

	_, err := s.im.ExecuteTransfer(s.ctx, s.signer, s.request())
	s.Equal(cause, err)
	s.assertNothingSigned()
}

func (s *transferTestSuite) TestDeriveFailure() {
	cause := &domain.SigningError{Op: "SignMessage", Err: errors.New("rejected")}
	s.api.On("GetSignableTransferV1", mock.Anything, mock.Anything).Return(signableResponse(), nil).Once()
	s.deriver.On("Derive", mock.Anything, s.signer).Return(nil, cause).Once()

	_, err := s.im.ExecuteTransfer(s.ctx, s.signer, s.request())
	s.ErrorIs(err, domain.ErrSigningFailure)
	s.api.AssertNotCalled(s.T(), "CreateTransferV1", mock.Anything, mock.Anything)
}

func (s *transferTestSuite) TestRawSignFailure() {
	s.api.On("GetSignableTransferV1", mock.Anything, mock.Anything).Return(signableResponse(), nil).Once()
	s.deriver.On("Derive", mock.Anything, s.signer).Return(s.starkSigner, nil).Once()
	s.signer.On("SignMessage", mock.Anything, "MSG").Return("", errors.New("rejected")).Once()

	_, err := s.im.ExecuteTransfer(s.ctx, s.signer, s.request())
	s.ErrorIs(err, domain.ErrSigningFailure)
	s.starkSigner.AssertNotCalled(s.T(), "SignHash", mock.Anything)
	s.api.AssertNotCalled(s.T(), "CreateTransferV1", mock.Anything, mock.Anything)
}

func (s *transferTestSuite) TestHashSignFailure() {
	cause := &domain.SigningError{Op: "SignHash", Err: errors.New("bad hash")}
	s.api.On("GetSignableTransferV1", mock.Anything, mock.Anything).Return(signableResponse(), nil).Once()
	s.deriver.On("Derive", mock.Anything, s.signer).Return(s.starkSigner, nil).Once()
	s.signer.On("SignMessage", mock.Anything, "MSG").Return(msgSignature, nil).Once()
	s.starkSigner.On("SignHash", "0xHASH").Return("", cause).Once()

	_, err := s.im.ExecuteTransfer(s.ctx, s.signer, s.request())
	s.Equal(cause, err)
	s.api.AssertNotCalled(s.T(), "CreateTransferV1", mock.Anything, mock.Anything)
}

func (s *transferTestSuite) TestCreateFailure() {
	cause := &domain.TransportError{Op: "CreateTransferV1", StatusCode: 401, Code: "unauthorized"}
	s.api.On("GetSignableTransferV1", mock.Anything, mock.Anything).Return(signableResponse(), nil).Once()
	s.expectSigning()
	s.api.On("CreateTransferV1", mock.Anything, mock.Anything).Return(nil, cause).Once()

	res, err := s.im.ExecuteTransfer(s.ctx, s.signer, s.request())
	s.Nil(res)
	s.Equal(cause, err)
	s.ErrorIs(err, domain.ErrTransportFailure)
}
