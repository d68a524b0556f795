package api

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/token", s.handleIssueToken)
		}

		// Pool routes (public read, protected write)
		pool := api.Group("/pool")
		{
			pool.GET("", s.handleGetPool)
			pool.GET("/reserves", s.handleGetReserves)
			pool.GET("/price/:denom", s.handleGetPrice)
			pool.GET("/simulate", s.handleSimulateSwap)
			pool.GET("/params", s.handleGetParams)

			poolProtected := pool.Group("")
			poolProtected.Use(s.AuthMiddleware())
			{
				poolProtected.POST("/swap", s.handleSwap)
				poolProtected.POST("/liquidity/add", s.handleAddLiquidity)
				poolProtected.POST("/liquidity/remove", s.handleRemoveLiquidity)
			}
		}

		// Token ledger routes
		tokens := api.Group("/tokens/:denom")
		{
			tokens.GET("/balance/:address", s.handleGetBalance)
			tokens.GET("/allowance/:owner/:spender", s.handleGetAllowance)

			tokensProtected := tokens.Group("")
			tokensProtected.Use(s.AuthMiddleware())
			{
				tokensProtected.POST("/approve", s.handleApprove)
				tokensProtected.POST("/transfer", s.handleTransfer)
			}
		}
	}
}
