// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/passgen/internal/api"
	"github.com/holomush/passgen/internal/observability"
	"github.com/holomush/passgen/internal/password"
)

var _ = Describe("Password API", func() {
	var (
		obsServer *observability.Server
		apiServer *api.Server
		client    *http.Client
		baseURL   string
	)

	BeforeEach(func() {
		obsServer = observability.NewServer("127.0.0.1:0", nil)
		_, err := obsServer.Start()
		Expect(err).NotTo(HaveOccurred())

		apiServer, err = api.NewServer(api.Options{
			Addr:         "127.0.0.1:0",
			Defaults:     password.DefaultRequest(),
			DefaultCount: 1,
			MaxLength:    256,
			MaxCount:     50,
			Recorder:     obsServer.Metrics(),
			Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
		Expect(err).NotTo(HaveOccurred())
		_, err = apiServer.Start()
		Expect(err).NotTo(HaveOccurred())

		baseURL = "http://" + apiServer.Addr()
		client = &http.Client{Timeout: 5 * time.Second}
	})

	AfterEach(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		Expect(apiServer.Stop(ctx)).To(Succeed())
		Expect(obsServer.Stop(ctx)).To(Succeed())
	})

	generate := func(body string) (int, []byte) {
		resp, err := client.Post(baseURL+api.RoutePasswords, "application/json", strings.NewReader(body))
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		return resp.StatusCode, data
	}

	Describe("generating passwords", func() {
		It("returns one password of the default length", func() {
			status, body := generate(`{}`)
			Expect(status).To(Equal(http.StatusOK))

			var resp api.GenerateResponse
			Expect(json.Unmarshal(body, &resp)).To(Succeed())
			Expect(resp.Passwords).To(HaveLen(1))
			Expect(resp.Passwords[0]).To(HaveLen(password.DefaultLength))
			_, err := ulid.ParseStrict(resp.RequestID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("includes every enabled class when length equals the class count", func() {
			status, body := generate(`{"length": 4, "count": 50}`)
			Expect(status).To(Equal(http.StatusOK))

			var resp api.GenerateResponse
			Expect(json.Unmarshal(body, &resp)).To(Succeed())
			Expect(resp.Passwords).To(HaveLen(50))
			for _, pw := range resp.Passwords {
				Expect(pw).To(HaveLen(4))
				Expect(strings.IndexAny(pw, password.UpperAlphabet)).To(BeNumerically(">=", 0))
				Expect(strings.IndexAny(pw, password.LowerAlphabet)).To(BeNumerically(">=", 0))
				Expect(strings.IndexAny(pw, password.DigitAlphabet)).To(BeNumerically(">=", 0))
				Expect(strings.IndexAny(pw, password.SymbolAlphabet)).To(BeNumerically(">=", 0))
			}
		})

		It("rejects an unsatisfiable length with 422", func() {
			status, body := generate(`{"length": 3}`)
			Expect(status).To(Equal(http.StatusUnprocessableEntity))

			var resp api.ErrorResponse
			Expect(json.Unmarshal(body, &resp)).To(Succeed())
			Expect(resp.Code).To(Equal(password.CodeLengthTooShort))
		})

		It("rejects a fully excluded class set with 422", func() {
			status, body := generate(`{"length": 5, "classes": ["upper"], "exclude": "ABCDEFGHIJKLMNOPQRSTUVWXYZ"}`)
			Expect(status).To(Equal(http.StatusUnprocessableEntity))
			Expect(string(body)).To(ContainSubstring(password.CodeNoUsableClass))
		})

		It("serves concurrent clients", func() {
			const clients = 16
			var (
				wg   sync.WaitGroup
				mu   sync.Mutex
				seen = make(map[string]struct{})
			)
			for range clients {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					status, body := generate(`{"length": 32, "count": 10}`)
					Expect(status).To(Equal(http.StatusOK))

					var resp api.GenerateResponse
					Expect(json.Unmarshal(body, &resp)).To(Succeed())
					mu.Lock()
					defer mu.Unlock()
					for _, pw := range resp.Passwords {
						seen[pw] = struct{}{}
					}
				}()
			}
			wg.Wait()
			Expect(seen).To(HaveLen(clients * 10))
		})
	})

	Describe("listing classes", func() {
		It("returns the four classes in declaration order", func() {
			resp, err := client.Get(baseURL + api.RouteClasses)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			var classes []api.ClassInfo
			Expect(json.NewDecoder(resp.Body).Decode(&classes)).To(Succeed())
			names := make([]string, 0, len(classes))
			for _, c := range classes {
				names = append(names, c.Name)
			}
			Expect(names).To(Equal([]string{"upper", "lower", "digit", "symbol"}))
		})
	})

	Describe("metrics", func() {
		It("counts generations by outcome", func() {
			generate(`{"count": 3}`)
			generate(`{"length": 1}`)

			resp, err := client.Get("http://" + obsServer.Addr() + "/metrics")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			var buf bytes.Buffer
			_, err = buf.ReadFrom(resp.Body)
			Expect(err).NotTo(HaveOccurred())

			Expect(buf.String()).To(ContainSubstring(`passgen_generations_total{outcome="ok"} 3`))
			Expect(buf.String()).To(ContainSubstring(`passgen_generations_total{outcome="password_length_too_short"} 1`))
			Expect(buf.String()).To(ContainSubstring(`passgen_http_requests_total{route="/v1/passwords",status="200"} 1`))
		})
	})
})
