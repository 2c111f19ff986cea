package renderer

// The storefront is fully pre-rendered: every product page is a single
// self-contained document with inline styles and an inert script payload,
// and the index page builds its grid client-side from products.json.

const productPageTemplate = `<!DOCTYPE html>
<html lang="ja">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0, maximum-scale=1.0, user-scalable=no">
    <title>{{.ProductName}} - {{.StoreName}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: -apple-system, BlinkMacSystemFont, "Helvetica Neue", Arial, sans-serif; background: #fff; color: #000; overflow-x: hidden; min-height: 100vh; display: flex; flex-direction: column; }
        header { position: fixed; top: 0; left: 0; right: 0; background: #fff; border-bottom: 1px solid #e5e5e5; z-index: 100; }
        .header-content { display: flex; align-items: center; justify-content: space-between; padding: 12px 16px; }
        .logo { font-size: 20px; font-weight: 700; letter-spacing: 2px; }
        main { flex: 1; margin-top: 56px; padding-bottom: 90px; }
        .product-images { position: relative; }
        .main-image { width: 100%; display: block; }
        .image-carousel { display: flex; gap: 8px; padding: 12px 16px; overflow-x: auto; }
        .carousel-item { flex: 0 0 64px; border: 1px solid #e5e5e5; cursor: pointer; }
        .carousel-item.active { border-color: #000; }
        .carousel-item img { width: 100%; display: block; }
        .product-details { padding: 16px; }
        .brand-name { font-size: 12px; color: #888; letter-spacing: 1px; }
        .product-name { font-size: 18px; font-weight: 600; margin: 4px 0 12px; }
        .price-section { display: flex; align-items: baseline; gap: 8px; margin-bottom: 16px; }
        .current-price { font-size: 22px; font-weight: 700; }
        .current-price.discounted { color: #f00; }
        .original-price { font-size: 14px; color: #888; text-decoration: line-through; }
        .discount-badge { font-size: 12px; color: #fff; background: #f00; padding: 2px 6px; border-radius: 2px; }
        .selection-section { margin-bottom: 16px; }
        .section-title { font-size: 13px; font-weight: 600; margin-bottom: 8px; }
        .option-item { display: inline-block; border: 1px solid #ccc; padding: 6px 14px; margin: 0 6px 6px 0; font-size: 13px; cursor: pointer; }
        .option-item.active { border-color: #000; background: #000; color: #fff; }
        .description-section, .details-section { padding: 16px; border-top: 8px solid #f5f5f5; }
        .description-text { font-size: 14px; line-height: 1.9; }
        .detail-item { display: flex; padding: 10px 0; border-bottom: 1px solid #eee; font-size: 13px; }
        .detail-label { flex: 0 0 90px; color: #888; }
        .purchase-section { position: fixed; bottom: 0; left: 0; right: 0; background: #fff; border-top: 1px solid #e5e5e5; padding: 12px 16px; }
        .btn-add-cart { width: 100%; background: #000; color: #fff; border: none; padding: 14px; font-size: 15px; cursor: pointer; }
    </style>
</head>
<body>
    <header>
        <div class="header-content">
            <h1 class="logo">{{.StoreName}}</h1>
        </div>
    </header>

    <main>
        <div class="product-images">
            <img src="{{.Thumbnail}}" alt="商品画像" class="main-image" id="mainImage">
            {{- if .Details}}
            <div class="image-carousel">
                <div class="carousel-item active" onclick="changeImage('{{.Thumbnail}}', this)">
                    <img src="{{.Thumbnail}}" alt="メイン画像">
                </div>
                {{- range $i, $url := .Details}}
                <div class="carousel-item" onclick="changeImage('{{$url}}', this)">
                    <img src="{{$url}}" alt="画像{{add $i 2}}">
                </div>
                {{- end}}
            </div>
            {{- end}}
        </div>

        <div class="product-details">
            <div class="brand-name">{{.BrandName}}</div>
            <h2 class="product-name">{{.ProductName}}</h2>

            <div class="price-section">
                <div class="current-price{{if .HasDiscount}} discounted{{end}}">¥{{.SalePrice}}</div>
                {{- if .HasDiscount}}
                <span class="original-price">¥{{.OriginalPrice}}</span>
                <span class="discount-badge">{{.DiscountRate}}% OFF</span>
                {{- end}}
            </div>

            {{- if .Colors}}
            <div class="selection-section">
                <h3 class="section-title">カラー</h3>
                <div class="color-options">
                    {{- range $i, $c := .Colors}}
                    <div class="option-item color-option{{if eq $i 0}} active{{end}}" data-value="{{$c}}">{{$c}}</div>
                    {{- end}}
                </div>
            </div>
            {{- end}}

            {{- if .Sizes}}
            <div class="selection-section">
                <h3 class="section-title">サイズ</h3>
                <div class="size-options">
                    {{- range $i, $s := .Sizes}}
                    <div class="option-item size-option{{if eq $i 0}} active{{end}}" data-value="{{$s}}">{{$s}}</div>
                    {{- end}}
                </div>
            </div>
            {{- end}}
        </div>

        <div class="description-section">
            <h3 class="section-title">商品説明</h3>
            <p class="description-text">{{.Description}}</p>
        </div>

        <div class="details-section">
            <h3 class="section-title">商品詳細</h3>
            <div class="detail-item">
                <span class="detail-label">素材</span>
                <span class="detail-value">{{if .Material}}{{.Material}}{{else}}—{{end}}</span>
            </div>
            <div class="detail-item">
                <span class="detail-label">原産国</span>
                <span class="detail-value">{{if .Origin}}{{.Origin}}{{else}}—{{end}}</span>
            </div>
            <div class="detail-item">
                <span class="detail-label">品番</span>
                <span class="detail-value">{{.ProductNumber}}</span>
            </div>
        </div>
    </main>

    <div class="purchase-section">
        <div class="purchase-buttons">
            <button class="btn-add-cart" onclick="startPurchaseFlow()">注文する（代引きのみ）</button>
        </div>
    </div>

    <script>
        var PRODUCT = {{.ProductJSON}};

        function changeImage(url, el) {
            document.getElementById('mainImage').src = url;
            document.querySelectorAll('.carousel-item').forEach(function (item) {
                item.classList.remove('active');
            });
            el.classList.add('active');
        }

        document.querySelectorAll('.option-item').forEach(function (item) {
            item.addEventListener('click', function () {
                var group = item.classList.contains('color-option') ? '.color-option' : '.size-option';
                document.querySelectorAll(group).forEach(function (o) { o.classList.remove('active'); });
                item.classList.add('active');
            });
        });

        function selectedOption(selector) {
            var el = document.querySelector(selector + '.active');
            return el ? el.dataset.value : '';
        }

        function startPurchaseFlow() {
            var order = {
                productNumber: PRODUCT.productNumber,
                productName: PRODUCT.productName,
                color: selectedOption('.color-option'),
                size: selectedOption('.size-option'),
                quantity: 1,
                total: PRODUCT.salePrice + PRODUCT.codFee
            };
            var lines = [
                '【ご注文内容】',
                '商品: ' + order.productName + ' (' + order.productNumber + ')',
                order.color ? 'カラー: ' + order.color : '',
                order.size ? 'サイズ: ' + order.size : '',
                '合計: ¥' + order.total.toLocaleString('ja-JP') + '（代引き手数料込み）'
            ].filter(Boolean);
            if (window.confirm(lines.join('\n') + '\n\nこの内容で注文しますか？')) {
                window.location.href = 'mailto:' + PRODUCT.orderEmail +
                    '?subject=' + encodeURIComponent('【注文】' + order.productName) +
                    '&body=' + encodeURIComponent(lines.join('\n'));
            }
        }
    </script>
</body>
</html>
`

const indexPageTemplate = `<!DOCTYPE html>
<html lang="ja">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.StoreName}} - オンラインストア</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: -apple-system, BlinkMacSystemFont, "Helvetica Neue", Arial, sans-serif; background: #fff; color: #000; }
        header { position: sticky; top: 0; background: #fff; border-bottom: 1px solid #e5e5e5; padding: 14px 16px; z-index: 10; }
        .logo { font-size: 20px; font-weight: 700; letter-spacing: 2px; }
        .category-filter { display: flex; gap: 8px; padding: 12px 16px; overflow-x: auto; border-bottom: 1px solid #eee; }
        .category-btn { flex: 0 0 auto; border: 1px solid #ccc; background: #fff; padding: 6px 14px; font-size: 13px; cursor: pointer; border-radius: 16px; }
        .category-btn.active { background: #000; color: #fff; border-color: #000; }
        .product-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(160px, 1fr)); gap: 12px; padding: 16px; }
        .product-card { text-decoration: none; color: inherit; position: relative; }
        .product-card img { width: 100%; aspect-ratio: 4 / 5; object-fit: cover; background: #f5f5f5; }
        .card-badge { position: absolute; top: 8px; left: 8px; background: #f00; color: #fff; font-size: 11px; padding: 2px 6px; }
        .card-brand { font-size: 11px; color: #888; margin-top: 6px; }
        .card-name { font-size: 13px; margin: 2px 0; }
        .card-price { font-size: 14px; font-weight: 700; }
        .card-price.discounted { color: #f00; }
        .empty-note { padding: 40px 16px; text-align: center; color: #888; font-size: 14px; }
    </style>
</head>
<body>
    <header><h1 class="logo">{{.StoreName}}</h1></header>
    <div class="category-filter" id="categoryFilter"></div>
    <div class="product-grid" id="productGrid"></div>
    <div class="empty-note" id="emptyNote" style="display:none">商品がまだ登録されていません</div>

    <script>
        var allProducts = [];
        var activeCategory = 'すべて';

        function yen(v) { return '¥' + Number(v).toLocaleString('ja-JP'); }

        function renderFilter() {
            var categories = ['すべて'];
            allProducts.forEach(function (p) {
                if (p.category && categories.indexOf(p.category) === -1) { categories.push(p.category); }
            });
            var bar = document.getElementById('categoryFilter');
            bar.innerHTML = '';
            categories.forEach(function (c) {
                var btn = document.createElement('button');
                btn.className = 'category-btn' + (c === activeCategory ? ' active' : '');
                btn.textContent = c;
                btn.onclick = function () { activeCategory = c; renderFilter(); renderGrid(); };
                bar.appendChild(btn);
            });
        }

        function renderGrid() {
            var grid = document.getElementById('productGrid');
            grid.innerHTML = '';
            var visible = allProducts.filter(function (p) {
                return activeCategory === 'すべて' || p.category === activeCategory;
            });
            document.getElementById('emptyNote').style.display = visible.length ? 'none' : 'block';
            visible.forEach(function (p) {
                var card = document.createElement('a');
                card.className = 'product-card';
                card.href = 'products/' + encodeURIComponent(p.productNumber) + '.html';
                var discounted = p.originalPrice && p.originalPrice !== p.salePrice;
                card.innerHTML =
                    (discounted ? '<span class="card-badge">SALE</span>' : '') +
                    '<img loading="lazy" alt="">' +
                    '<div class="card-brand"></div>' +
                    '<div class="card-name"></div>' +
                    '<div class="card-price' + (discounted ? ' discounted' : '') + '"></div>';
                card.querySelector('img').src = p.thumbnail || {{.PlaceholderJSON}};
                card.querySelector('.card-brand').textContent = p.brandName || '';
                card.querySelector('.card-name').textContent = p.productName;
                card.querySelector('.card-price').textContent = yen(p.salePrice);
                grid.appendChild(card);
            });
        }

        fetch('products.json')
            .then(function (res) { return res.json(); })
            .then(function (data) {
                allProducts = data.products || [];
                renderFilter();
                renderGrid();
            })
            .catch(function () {
                document.getElementById('emptyNote').style.display = 'block';
            });
    </script>
</body>
</html>
`
